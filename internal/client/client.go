package client

import (
	"fmt"
	"io"

	"github.com/briceparent/vosfactures/internal/http"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
)

var _ vosfactures.Client = (*Client)(nil)

// Client implements the vosfactures.Client interface.
type Client struct {
	transport vosfactures.Transport
	gate      *vosfactures.Gate
	logger    vosfactures.Logger
	publisher vosfactures.Publisher
	baseURL   string

	// Resource clients
	clients     *RecordsClient
	products    *RecordsClient
	departments *RecordsClient
	invoices    *InvoicesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *vosfactures.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a new VosFactures API client speaking HTTP to config.Host.
func New(config *vosfactures.Config) (*Client, error) {
	if config == nil {
		return nil, vosfactures.ErrConfigRequired
	}

	if config.Host == "" {
		return nil, vosfactures.ErrHostRequired
	}

	if config.APIToken == "" {
		return nil, vosfactures.ErrAPITokenRequired
	}

	httpClient := http.NewClient(config.Host, config.APIToken, createHTTPClientOptions(config)...)

	client, err := NewWithTransport(config, httpClient)
	if err != nil {
		return nil, err
	}

	client.baseURL = httpClient.BaseURL()

	return client, nil
}

// NewWithTransport creates a client over a custom transport. Host and token
// are not required since the transport owns the connection details.
func NewWithTransport(config *vosfactures.Config, transport vosfactures.Transport) (*Client, error) {
	if config == nil {
		return nil, vosfactures.ErrConfigRequired
	}

	if transport == nil {
		return nil, vosfactures.ErrTransportRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = vosfactures.NoopLogger()
	}

	client := &Client{
		transport: transport,
		gate:      vosfactures.NewGate(config.Commands),
		logger:    logger,
		publisher: config.Publisher,
		baseURL:   config.Host,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	opts := []vosfactures.RepositoryOption{vosfactures.WithLogger(c.logger)}
	if c.publisher != nil {
		opts = append(opts, vosfactures.WithPublisher(c.publisher))
	}

	c.clients = NewRecordsClient(vosfactures.ClientDescriptor, c.transport, c.gate, opts...)
	c.products = NewRecordsClient(vosfactures.ProductDescriptor, c.transport, c.gate, opts...)
	c.departments = NewRecordsClient(vosfactures.DepartmentDescriptor, c.transport, c.gate, opts...)
	c.invoices = NewInvoicesClient(c.transport, c.gate, opts...)
}

// Clients implements vosfactures.Client.Clients.
func (c *Client) Clients() vosfactures.RecordClient {
	return c.clients
}

// Products implements vosfactures.Client.Products.
func (c *Client) Products() vosfactures.RecordClient {
	return c.products
}

// Departments implements vosfactures.Client.Departments.
func (c *Client) Departments() vosfactures.RecordClient {
	return c.departments
}

// Invoices implements vosfactures.Client.Invoices.
func (c *Client) Invoices() vosfactures.InvoicesClient {
	return c.invoices
}

// Entity implements vosfactures.Client.Entity.
func (c *Client) Entity(name string) (vosfactures.RecordClient, error) {
	switch name {
	case vosfactures.EntityClient:
		return c.clients, nil
	case vosfactures.EntityProduct:
		return c.products, nil
	case vosfactures.EntityDepartment:
		return c.departments, nil
	case vosfactures.EntityInvoice:
		return c.invoices, nil
	default:
		return nil, fmt.Errorf("%w: %q", vosfactures.ErrUnknownEntity, name)
	}
}

// CommandTable returns the command table enforced by the client.
func (c *Client) CommandTable() vosfactures.CommandTable {
	return c.gate.Table()
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the event publisher when it holds a connection.
func (c *Client) Close() error {
	closer, ok := c.publisher.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return fmt.Errorf("closing event publisher: %w", err)
	}

	return nil
}
