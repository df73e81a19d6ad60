package vosfactures

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Fields holds the attributes of one remote resource keyed by API field name.
type Fields map[string]any

// Clone returns a deep copy of the fields. Nested lists and objects are copied
// so that the clone can be mutated without touching the original.
func (f Fields) Clone() Fields {
	clone := make(Fields, len(f))
	for key, value := range f {
		clone[key] = cloneValue(value)
	}

	return clone
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Fields:
		return typed.Clone()
	case map[string]any:
		return map[string]any(Fields(typed).Clone())
	case []Fields:
		out := make([]Fields, len(typed))
		for i, item := range typed {
			out[i] = item.Clone()
		}

		return out
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = map[string]any(Fields(item).Clone())
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return value
	}
}

// Operation names one of the five record operations.
type Operation string

// Record operations.
const (
	OperationCreate Operation = "create"
	OperationGet    Operation = "get"
	OperationList   Operation = "list"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// AllOperations returns every operation in a stable order.
func AllOperations() []Operation {
	return []Operation{OperationCreate, OperationGet, OperationList, OperationUpdate, OperationDelete}
}

// ParseOperation converts a command name into an Operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range AllOperations() {
		if string(op) == name {
			return op, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Endpoint is the resource path and envelope action serving one operation.
type Endpoint struct {
	Page   string `json:"page"   yaml:"page"`
	Action string `json:"action" yaml:"action"`
}

// Call is a single request handed to a Transport.
type Call struct {
	Endpoint   Endpoint
	InstanceID string
	Fields     Fields
}

// Body is a raw JSON response body.
type Body []byte

// Object decodes a single-entity response. Numbers are kept as json.Number so
// identifiers and amounts survive without float rounding. An empty body or a
// JSON null decodes to empty fields.
func (b Body) Object() (Fields, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Fields{}, nil
	}

	var fields Fields

	err := b.decode(&fields)
	if err != nil {
		return nil, fmt.Errorf("parsing object response: %w", err)
	}

	if fields == nil {
		fields = Fields{}
	}

	return fields, nil
}

// List decodes a list response into one Fields per element.
func (b Body) List() ([]Fields, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}

	var list []Fields

	err := b.decode(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return list, nil
}

func (b Body) decode(target any) error {
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()

	return decoder.Decode(target)
}

// Transport executes calls against the remote service. Each method issues one
// blocking request and returns the response body, or an *HTTPError when the
// status code is not expected for the verb.
type Transport interface {
	Fetch(ctx context.Context, call *Call) (Body, error)
	Create(ctx context.Context, call *Call) (Body, error)
	Replace(ctx context.Context, call *Call) (Body, error)
	Remove(ctx context.Context, call *Call) (Body, error)
}

// Event describes a completed record mutation.
type Event struct {
	Entity     string    `json:"entity"`
	Operation  Operation `json:"operation"`
	ID         string    `json:"id"`
	Fields     Fields    `json:"fields,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher receives lifecycle events after create, update and delete succeed.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// FormatValue renders a field value for display. Nil renders as an empty string.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}
