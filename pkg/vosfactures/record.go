package vosfactures

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const fieldID = "id"

// Record is an in-memory copy of one remote resource. Records are produced by
// a Repository and are not safe for concurrent mutation.
type Record struct {
	descriptor *Descriptor
	repo       *Repository
	fields     Fields
	deleted    bool
	assigning  bool
}

// NewRecord returns a record holding the descriptor defaults. The record is not
// bound to a repository, so Update and Delete return ErrDetachedRecord.
func NewRecord(descriptor *Descriptor) *Record {
	return &Record{
		descriptor: descriptor,
		fields:     descriptor.defaults(),
	}
}

// Descriptor returns the entity descriptor of the record.
func (r *Record) Descriptor() *Descriptor {
	return r.descriptor
}

// ID returns the identifier as decoded from the service, or nil before creation.
func (r *Record) ID() any {
	return r.fields[fieldID]
}

// IDString returns the identifier formatted for URLs and logs.
func (r *Record) IDString() string {
	return FormatValue(r.fields[fieldID])
}

// Value returns the raw value of a field.
func (r *Record) Value(name string) any {
	return r.fields[name]
}

// Text returns the display form of a field. Unset fields render empty.
func (r *Record) Text(name string) string {
	return FormatValue(r.fields[name])
}

// Decimal parses a monetary or numeric field.
func (r *Record) Decimal(name string) (decimal.Decimal, error) {
	raw := r.Text(name)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s.%s is unset", ErrNotDecimal, r.descriptor.Name, name)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s.%s=%q", ErrNotDecimal, r.descriptor.Name, name, raw)
	}

	return value, nil
}

// Fields returns a copy of every declared field.
func (r *Record) Fields() Fields {
	return r.fields.Clone()
}

// IsDeleted reports whether the record was deleted through Delete.
func (r *Record) IsDeleted() bool {
	return r.deleted
}

// SetField assigns a declared field. Deleted records reject every assignment,
// and the identifier and auto-managed fields are reserved for values coming
// from the service.
func (r *Record) SetField(name string, value any) error {
	return r.set(name, value)
}

// Update sends the updatable fields to the service and refreshes the record
// with the response.
func (r *Record) Update(ctx context.Context) (*Record, error) {
	if r.repo == nil {
		return nil, fmt.Errorf("updating %s: %w", r.descriptor.Name, ErrDetachedRecord)
	}

	return r.repo.update(ctx, r)
}

// Delete removes the resource remotely and freezes the record.
func (r *Record) Delete(ctx context.Context) error {
	if r.repo == nil {
		return fmt.Errorf("deleting %s: %w", r.descriptor.Name, ErrDetachedRecord)
	}

	return r.repo.delete(ctx, r)
}

// String renders the record using the entity format.
func (r *Record) String() string {
	if r.descriptor.Format == nil {
		return fmt.Sprintf("%s %s", r.descriptor.Name, r.IDString())
	}

	return r.descriptor.Format(r)
}

// MarshalJSON encodes the declared fields as a JSON object.
func (r *Record) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.fields)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", r.descriptor.Name, err)
	}

	return data, nil
}

// MarshalYAML renders numbers decoded from the service as plain YAML numbers.
func (r *Record) MarshalYAML() (interface{}, error) {
	out := make(map[string]any, len(r.fields))
	for name, value := range r.fields {
		out[name] = plainValue(value)
	}

	return out, nil
}

func plainValue(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i
		}

		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = plainValue(item)
		}

		return out
	case Fields:
		return plainValue(map[string]any(typed))
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plainValue(item)
		}

		return out
	default:
		return value
	}
}

func (r *Record) set(name string, value any) error {
	if r.deleted {
		return &ObjectIsDeletedError{Entity: r.descriptor.Name, ID: r.IDString()}
	}

	if !r.descriptor.Declares(name) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, r.descriptor.Name, name)
	}

	if !r.assigning && r.descriptor.IsProtected(name) {
		return &FieldProtectionError{
			Entity:    r.descriptor.Name,
			Field:     name,
			Protected: r.descriptor.ProtectedFields(),
		}
	}

	r.fields[name] = value

	return nil
}

// assign copies service data onto the record. Undeclared keys are dropped and
// protected fields are accepted.
func (r *Record) assign(data Fields) error {
	previous := r.assigning
	r.assigning = true

	defer func() { r.assigning = previous }()

	for name, value := range data {
		if !r.descriptor.Declares(name) {
			continue
		}

		err := r.set(name, value)
		if err != nil {
			return err
		}
	}

	return nil
}
