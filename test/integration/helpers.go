//go:build integration

// Package integration runs the client against a live VosFactures account.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/briceparent/vosfactures/internal/logging"
	"github.com/briceparent/vosfactures/pkg/vfclient"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Host     string
	APIToken string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Host:     os.Getenv("VOSFACTURES_TEST_HOST"),
		APIToken: os.Getenv("VOSFACTURES_TEST_API_TOKEN"),
		Verbose:  os.Getenv("VOSFACTURES_TEST_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Host == "" || config.APIToken == "" {
		t.Skip("VOSFACTURES_TEST_HOST or VOSFACTURES_TEST_API_TOKEN not set, skipping integration test")
	}
}

// NewClient creates a client for the test account.
func (config *TestConfig) NewClient(t *testing.T) vosfactures.Client {
	t.Helper()

	level := "warn"
	if config.Verbose {
		level = "debug"
	}

	client, err := vfclient.New(context.Background(), &vosfactures.Config{
		Host:     config.Host,
		APIToken: config.APIToken,
		Debug:    config.Verbose,
		Logger:   logging.New(logging.Config{Level: level, Console: true}),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// GenerateTestName generates a unique name for test resources
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupRecord deletes a record created by a test, ignoring failures.
func CleanupRecord(t *testing.T, record *vosfactures.Record) {
	t.Helper()

	if record == nil || record.IsDeleted() {
		return
	}

	if err := record.Delete(context.Background()); err != nil {
		t.Logf("Failed to cleanup %s: %v", record, err)
	}
}
