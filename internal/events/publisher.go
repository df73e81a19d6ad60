// Package events publishes record lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/nats-io/nats.go"
)

var _ vosfactures.Publisher = (*Publisher)(nil)

// Conn is the subset of *nats.Conn used by the publisher.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher sends each event as JSON to <prefix>.<entity>.<operation>.
type Publisher struct {
	conn   Conn
	prefix string
}

// NewPublisher wraps an established connection. An empty prefix means
// "vosfactures".
func NewPublisher(conn Conn, prefix string) *Publisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = constants.DefaultEventSubjectPrefix
	}

	return &Publisher{conn: conn, prefix: prefix}
}

// Connect dials the NATS server and returns a publisher over the connection.
func Connect(url, prefix string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("vosfactures"),
		nats.Timeout(constants.NATSConnectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return NewPublisher(conn, prefix), nil
}

// Subject returns the subject an event is published on.
func (p *Publisher) Subject(event *vosfactures.Event) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, strings.ToLower(event.Entity), event.Operation)
}

// Publish encodes and sends the event.
func (p *Publisher) Publish(ctx context.Context, event *vosfactures.Event) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("publishing %s event: %w", event.Operation, err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Operation, err)
	}

	subject := p.Subject(event)

	err = p.conn.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	err := p.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
