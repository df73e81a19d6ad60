package vosfactures

import (
	"fmt"
	"slices"
	"sort"
)

// CommandTable lists, per entity name, the operations the process allows.
// An entity without an entry, or an operation missing from its list, is blocked.
type CommandTable map[string][]Operation

// DefaultCommandTable enables every operation for every built-in entity.
func DefaultCommandTable() CommandTable {
	table := make(CommandTable, len(Descriptors()))
	for _, descriptor := range Descriptors() {
		table[descriptor.Name] = AllOperations()
	}

	return table
}

// ParseCommandTable builds a table from operation names, as found in settings.
func ParseCommandTable(raw map[string][]string) (CommandTable, error) {
	if raw == nil {
		return nil, nil
	}

	table := make(CommandTable, len(raw))

	for entity, names := range raw {
		ops := make([]Operation, 0, len(names))

		for _, name := range names {
			op, err := ParseOperation(name)
			if err != nil {
				return nil, fmt.Errorf("command table entry %s: %w", entity, err)
			}

			ops = append(ops, op)
		}

		table[entity] = ops
	}

	return table, nil
}

// Allows reports whether the table enables op for the entity.
func (t CommandTable) Allows(entity string, op Operation) bool {
	ops, ok := t[entity]

	return ok && slices.Contains(ops, op)
}

// Clone returns an independent copy of the table.
func (t CommandTable) Clone() CommandTable {
	if t == nil {
		return nil
	}

	clone := make(CommandTable, len(t))
	for entity, ops := range t {
		clone[entity] = slices.Clone(ops)
	}

	return clone
}

// Entities returns the entity names present in the table, sorted.
func (t CommandTable) Entities() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Gate decides whether an operation may run for an entity.
type Gate struct {
	table CommandTable
}

// NewGate creates a gate over a copy of the table. A nil table enables
// every operation.
func NewGate(table CommandTable) *Gate {
	if table == nil {
		table = DefaultCommandTable()
	}

	return &Gate{table: table.Clone()}
}

// Check returns a *CommandUnavailableError when the operation is forbidden by
// the entity or missing from the command table. It has no side effects.
func (g *Gate) Check(descriptor *Descriptor, op Operation) error {
	if descriptor.IsForbidden(op) {
		return &CommandUnavailableError{Entity: descriptor.Name, Operation: op, Forbidden: true}
	}

	if !g.table.Allows(descriptor.Name, op) {
		return &CommandUnavailableError{Entity: descriptor.Name, Operation: op}
	}

	return nil
}

// Table returns a copy of the gate's command table.
func (g *Gate) Table() CommandTable {
	return g.table.Clone()
}
