package vosfactures

import (
	"context"
	"fmt"
	"time"
)

// Repository runs the record operations of one entity through a Transport.
type Repository struct {
	descriptor *Descriptor
	transport  Transport
	gate       *Gate
	logger     Logger
	publisher  Publisher
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used for operation traces.
func WithLogger(logger Logger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPublisher sets the receiver of lifecycle events.
func WithPublisher(publisher Publisher) RepositoryOption {
	return func(r *Repository) {
		r.publisher = publisher
	}
}

// NewRepository creates a repository for the descriptor. A nil gate enables
// every operation.
func NewRepository(descriptor *Descriptor, transport Transport, gate *Gate, opts ...RepositoryOption) *Repository {
	if gate == nil {
		gate = NewGate(nil)
	}

	repo := &Repository{
		descriptor: descriptor,
		transport:  transport,
		gate:       gate,
		logger:     NoopLogger(),
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo
}

// Descriptor returns the entity descriptor served by the repository.
func (r *Repository) Descriptor() *Descriptor {
	return r.descriptor
}

// Create validates the input, applies defaults and creates the resource.
// Required fields are checked by key presence, so an explicit nil counts as
// provided. The input map is not modified.
func (r *Repository) Create(ctx context.Context, fields Fields) (*Record, error) {
	err := r.gate.Check(r.descriptor, OperationCreate)
	if err != nil {
		return nil, err
	}

	payload := fields.Clone()

	if r.descriptor.BeforeCreate != nil {
		err = r.descriptor.BeforeCreate(payload)
		if err != nil {
			return nil, err
		}
	}

	var missing []string

	for _, name := range r.descriptor.Required {
		if _, ok := payload[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, &ValidationError{Entity: r.descriptor.Name, Missing: missing}
	}

	for _, name := range r.descriptor.Defaulted {
		if _, ok := payload[name]; !ok {
			payload[name] = r.descriptor.defaultValue(name)
		}
	}

	body, err := r.transport.Create(ctx, r.call(OperationCreate, "", payload))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.descriptor.Name, err)
	}

	data, err := body.Object()
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.descriptor.Name, err)
	}

	record := r.newRecord()

	err = record.assign(data)
	if err != nil {
		return nil, err
	}

	r.trace(OperationCreate, record.IDString())
	r.publish(ctx, OperationCreate, record)

	return record, nil
}

// Get fetches a single resource by identifier.
func (r *Repository) Get(ctx context.Context, id any) (*Record, error) {
	err := r.gate.Check(r.descriptor, OperationGet)
	if err != nil {
		return nil, err
	}

	instanceID := FormatValue(id)
	if instanceID == "" {
		return nil, fmt.Errorf("getting %s: %w", r.descriptor.Name, ErrMissingIdentifier)
	}

	body, err := r.transport.Fetch(ctx, r.call(OperationGet, instanceID, nil))
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", r.descriptor.Name, instanceID, err)
	}

	data, err := body.Object()
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", r.descriptor.Name, instanceID, err)
	}

	record := r.newRecord()

	err = record.assign(Fields{fieldID: id})
	if err != nil {
		return nil, err
	}

	err = record.assign(data)
	if err != nil {
		return nil, err
	}

	r.trace(OperationGet, instanceID)

	return record, nil
}

// List fetches every resource of the entity, in service order.
func (r *Repository) List(ctx context.Context) ([]*Record, error) {
	err := r.gate.Check(r.descriptor, OperationList)
	if err != nil {
		return nil, err
	}

	body, err := r.transport.Fetch(ctx, r.call(OperationList, "", nil))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.descriptor.Name, err)
	}

	items, err := body.List()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.descriptor.Name, err)
	}

	records := make([]*Record, 0, len(items))

	for _, item := range items {
		record := r.newRecord()

		err = record.assign(item)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	r.logger.Debug("record operation", map[string]interface{}{
		"entity":    r.descriptor.Name,
		"operation": string(OperationList),
		"count":     len(records),
	})

	return records, nil
}

func (r *Repository) update(ctx context.Context, record *Record) (*Record, error) {
	err := r.gate.Check(r.descriptor, OperationUpdate)
	if err != nil {
		return nil, err
	}

	if record.deleted {
		return nil, &ObjectIsDeletedError{Entity: r.descriptor.Name, ID: record.IDString()}
	}

	instanceID := record.IDString()
	if instanceID == "" {
		return nil, fmt.Errorf("updating %s: %w", r.descriptor.Name, ErrMissingIdentifier)
	}

	payload := Fields{}

	for _, name := range r.descriptor.UpdatableFields() {
		if value := record.fields[name]; value != nil {
			payload[name] = cloneValue(value)
		}
	}

	body, err := r.transport.Replace(ctx, r.call(OperationUpdate, instanceID, payload))
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", r.descriptor.Name, instanceID, err)
	}

	data, err := body.Object()
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", r.descriptor.Name, instanceID, err)
	}

	err = record.assign(data)
	if err != nil {
		return nil, err
	}

	r.trace(OperationUpdate, instanceID)
	r.publish(ctx, OperationUpdate, record)

	return record, nil
}

func (r *Repository) delete(ctx context.Context, record *Record) error {
	err := r.gate.Check(r.descriptor, OperationDelete)
	if err != nil {
		return err
	}

	if record.deleted {
		return &ObjectIsDeletedError{Entity: r.descriptor.Name, ID: record.IDString()}
	}

	instanceID := record.IDString()
	if instanceID == "" {
		return fmt.Errorf("deleting %s: %w", r.descriptor.Name, ErrMissingIdentifier)
	}

	_, err = r.transport.Remove(ctx, r.call(OperationDelete, instanceID, nil))
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", r.descriptor.Name, instanceID, err)
	}

	record.deleted = true

	r.trace(OperationDelete, instanceID)
	r.publish(ctx, OperationDelete, record)

	return nil
}

func (r *Repository) newRecord() *Record {
	record := NewRecord(r.descriptor)
	record.repo = r

	return record
}

func (r *Repository) call(op Operation, instanceID string, fields Fields) *Call {
	return &Call{
		Endpoint:   r.descriptor.Endpoint(op),
		InstanceID: instanceID,
		Fields:     fields,
	}
}

func (r *Repository) trace(op Operation, id string) {
	r.logger.Debug("record operation", map[string]interface{}{
		"entity":    r.descriptor.Name,
		"operation": string(op),
		"id":        id,
	})
}

// publish hands the event to the publisher. Failures are logged only, the
// remote operation has already succeeded.
func (r *Repository) publish(ctx context.Context, op Operation, record *Record) {
	if r.publisher == nil {
		return
	}

	event := &Event{
		Entity:     r.descriptor.Name,
		Operation:  op,
		ID:         record.IDString(),
		OccurredAt: time.Now().UTC(),
	}

	if op != OperationDelete {
		event.Fields = record.Fields()
	}

	err := r.publisher.Publish(ctx, event)
	if err != nil {
		r.logger.Warn("failed to publish record event", map[string]interface{}{
			"entity":    event.Entity,
			"operation": string(op),
			"id":        event.ID,
			"error":     err.Error(),
		})
	}
}
