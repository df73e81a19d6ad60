package client

import (
	"context"
	"fmt"

	"github.com/briceparent/vosfactures/pkg/vosfactures"
)

var _ vosfactures.RecordClient = (*RecordsClient)(nil)

// RecordsClient implements vosfactures.RecordClient on top of a repository.
type RecordsClient struct {
	repo *vosfactures.Repository
}

// NewRecordsClient creates a record client for the descriptor.
func NewRecordsClient(
	descriptor *vosfactures.Descriptor,
	transport vosfactures.Transport,
	gate *vosfactures.Gate,
	opts ...vosfactures.RepositoryOption,
) *RecordsClient {
	return &RecordsClient{repo: vosfactures.NewRepository(descriptor, transport, gate, opts...)}
}

// Descriptor implements vosfactures.RecordClient.Descriptor.
func (c *RecordsClient) Descriptor() *vosfactures.Descriptor {
	return c.repo.Descriptor()
}

// Create implements vosfactures.RecordClient.Create.
func (c *RecordsClient) Create(ctx context.Context, fields vosfactures.Fields) (*vosfactures.Record, error) {
	return c.repo.Create(ctx, fields)
}

// Get implements vosfactures.RecordClient.Get.
func (c *RecordsClient) Get(ctx context.Context, id any) (*vosfactures.Record, error) {
	return c.repo.Get(ctx, id)
}

// List implements vosfactures.RecordClient.List.
func (c *RecordsClient) List(ctx context.Context) ([]*vosfactures.Record, error) {
	return c.repo.List(ctx)
}

// owns reports whether the record belongs to this client's entity.
func (c *RecordsClient) owns(record *vosfactures.Record) error {
	if record == nil || record.Descriptor() != c.repo.Descriptor() {
		return fmt.Errorf("%w: expected a %s record", vosfactures.ErrUnknownEntity, c.repo.Descriptor().Name)
	}

	return nil
}
