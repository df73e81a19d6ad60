package client

import (
	"context"

	"github.com/briceparent/vosfactures/pkg/vosfactures"
)

var _ vosfactures.InvoicesClient = (*InvoicesClient)(nil)

// InvoicesClient implements vosfactures.InvoicesClient.
type InvoicesClient struct {
	*RecordsClient
}

// NewInvoicesClient creates a new invoices client.
func NewInvoicesClient(
	transport vosfactures.Transport,
	gate *vosfactures.Gate,
	opts ...vosfactures.RepositoryOption,
) *InvoicesClient {
	return &InvoicesClient{
		RecordsClient: NewRecordsClient(vosfactures.InvoiceDescriptor, transport, gate, opts...),
	}
}

// SetStatus implements vosfactures.InvoicesClient.SetStatus. Any status
// string is accepted; the service decides whether it is valid. The local
// status is restored when the update fails.
func (c *InvoicesClient) SetStatus(ctx context.Context, record *vosfactures.Record, status string) (*vosfactures.Record, error) {
	err := c.owns(record)
	if err != nil {
		return nil, err
	}

	previous := record.Value("status")

	err = record.SetField("status", status)
	if err != nil {
		return nil, err
	}

	updated, err := record.Update(ctx)
	if err != nil {
		_ = record.SetField("status", previous)

		return nil, err
	}

	return updated, nil
}
