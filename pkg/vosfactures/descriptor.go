package vosfactures

import (
	"fmt"
	"slices"
)

// Field declares one attribute of an entity together with its default value.
// A nil Default means the field starts out unset.
type Field struct {
	Name    string
	Default any
}

// Descriptor is the static description of one remote entity type. Descriptors
// are built once at package initialisation and never mutated afterwards.
type Descriptor struct {
	// Name identifies the entity in the command table and in error messages.
	Name string
	// Endpoints maps every supported operation to its page and envelope action.
	Endpoints map[Operation]Endpoint
	// Fields lists the declared attributes in declaration order, id included.
	Fields []Field
	// Required fields must be present in create input.
	Required []string
	// Auto fields are maintained by the service and cannot be set by callers.
	Auto []string
	// Defaulted fields take their declared default when absent from create input.
	Defaulted []string
	// Forbidden operations are never available for this entity.
	Forbidden []Operation
	// Updatable is the update payload field list. Empty means every declared
	// field that is not auto-managed.
	Updatable []string
	// BeforeCreate validates create input before any network call.
	BeforeCreate func(fields Fields) error
	// Format renders the record for humans.
	Format func(record *Record) string
}

// Declares reports whether name is a declared field.
func (d *Descriptor) Declares(name string) bool {
	_, ok := d.field(name)

	return ok
}

// FieldNames returns the declared field names in declaration order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}

	return names
}

// IsAuto reports whether the field is maintained by the service.
func (d *Descriptor) IsAuto(name string) bool {
	return slices.Contains(d.Auto, name)
}

// IsProtected reports whether callers are barred from assigning the field.
// The identifier is always protected along with the auto-managed fields.
func (d *Descriptor) IsProtected(name string) bool {
	return name == fieldID || d.IsAuto(name)
}

// ProtectedFields returns the identifier followed by the auto-managed fields.
func (d *Descriptor) ProtectedFields() []string {
	return append([]string{fieldID}, d.Auto...)
}

// IsForbidden reports whether the entity never supports the operation.
func (d *Descriptor) IsForbidden(op Operation) bool {
	return slices.Contains(d.Forbidden, op)
}

// Endpoint returns the endpoint serving an operation.
func (d *Descriptor) Endpoint(op Operation) Endpoint {
	return d.Endpoints[op]
}

// UpdatableFields returns the fields sent by update, in declaration order.
func (d *Descriptor) UpdatableFields() []string {
	if len(d.Updatable) > 0 {
		return slices.Clone(d.Updatable)
	}

	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		if !d.IsAuto(field.Name) {
			names = append(names, field.Name)
		}
	}

	return names
}

// Validate checks that the descriptor is internally consistent.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}

	if !d.Declares(fieldID) {
		return fmt.Errorf("%w: %s does not declare %q", ErrInvalidDescriptor, d.Name, fieldID)
	}

	groups := map[string][]string{
		"required":  d.Required,
		"auto":      d.Auto,
		"defaulted": d.Defaulted,
		"updatable": d.Updatable,
	}
	for group, names := range groups {
		for _, name := range names {
			if !d.Declares(name) {
				return fmt.Errorf("%w: %s %s field %q is not declared", ErrInvalidDescriptor, d.Name, group, name)
			}
		}
	}

	for _, op := range AllOperations() {
		if d.IsForbidden(op) {
			continue
		}

		endpoint, ok := d.Endpoints[op]
		if !ok || endpoint.Page == "" || endpoint.Action == "" {
			return fmt.Errorf("%w: %s has no endpoint for %s", ErrInvalidDescriptor, d.Name, op)
		}
	}

	return nil
}

func (d *Descriptor) field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

// defaults returns a fresh copy of every declared default.
func (d *Descriptor) defaults() Fields {
	fields := make(Fields, len(d.Fields))
	for _, field := range d.Fields {
		fields[field.Name] = cloneValue(field.Default)
	}

	return fields
}

func (d *Descriptor) defaultValue(name string) any {
	field, _ := d.field(name)

	return cloneValue(field.Default)
}
