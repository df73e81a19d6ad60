// Package vfclient provides the main entry point for creating VosFactures API clients
package vfclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/briceparent/vosfactures/internal/client"
	"github.com/briceparent/vosfactures/internal/events"
	"github.com/briceparent/vosfactures/internal/logging"
	"github.com/briceparent/vosfactures/internal/settings"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
)

// New creates a new VosFactures API client.
func New(ctx context.Context, config *vosfactures.Config) (vosfactures.Client, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	if config == nil {
		return nil, vosfactures.ErrConfigRequired
	}

	if strings.TrimSpace(config.Host) == "" {
		return nil, vosfactures.ErrHostRequired
	}

	// The transport adds https:// when the host has no scheme.
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client for an account host and API token, with every
// operation enabled.
func NewWithToken(ctx context.Context, host, token string) (vosfactures.Client, error) {
	return New(ctx, &vosfactures.Config{
		Host:     host,
		APIToken: token,
	})
}

// NewFromSettings creates a client from the process settings: VOSFACTURES_*
// environment variables when VOSFACTURES_HOST is set, the settings file at
// path otherwise (empty path means $HOME/.vosfactures/config.yml). When a NATS
// URL is configured, lifecycle events are published there; call Close to
// release the connection.
func NewFromSettings(ctx context.Context, path string) (vosfactures.Client, error) {
	loaded, err := settings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	err = loaded.Validate()
	if err != nil {
		return nil, err
	}

	config := loaded.Config()
	config.Logger = logging.New(logging.Config{Level: loaded.LogLevel})
	loaded.WarnIfUnrestricted(config.Logger)

	if loaded.NATSURL != "" {
		publisher, err := events.Connect(loaded.NATSURL, loaded.EventSubject)
		if err != nil {
			return nil, err
		}

		config.Publisher = publisher
	}

	c, err := New(ctx, config)
	if err != nil {
		if closer, ok := config.Publisher.(*events.Publisher); ok {
			_ = closer.Close()
		}

		return nil, err
	}

	return c, nil
}
