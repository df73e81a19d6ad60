package vosfactures

import (
	"context"
	"time"
)

// RecordClient defines the record operations available for one entity.
type RecordClient interface {
	Descriptor() *Descriptor
	Create(ctx context.Context, fields Fields) (*Record, error)
	Get(ctx context.Context, id any) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
}

// InvoicesClient adds invoice specific operations to RecordClient.
type InvoicesClient interface {
	RecordClient
	// SetStatus assigns the status field and persists the record.
	SetStatus(ctx context.Context, record *Record, status string) (*Record, error)
}

// Client is the main VosFactures API client interface.
type Client interface {
	Clients() RecordClient
	Products() RecordClient
	Departments() RecordClient
	Invoices() InvoicesClient

	// Entity returns the record client serving the named entity
	// (Client, Product, Department or Invoice).
	Entity(name string) (RecordClient, error)

	// Close releases resources held by the client, such as the event
	// publisher connection.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a vosfactures.Client.
//
// Host and APIToken are required. Commands lists the operations each entity
// may run; a nil table enables every operation, while an empty non-nil table
// blocks them all.
type Config struct {
	// Host: account host such as "acme.vosfactures.fr". vfclient.New adds
	// "https://" when no scheme is present.
	Host string
	// APIToken: account API token sent in every request envelope.
	APIToken string
	// Commands: per entity list of allowed operations.
	Commands CommandTable

	// HTTPTimeout: timeout applied to each HTTP round trip.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// Publisher: optional receiver of record lifecycle events.
	Publisher Publisher
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

// NoopLogger returns a Logger that discards everything.
func NoopLogger() Logger {
	return noopLogger{}
}
