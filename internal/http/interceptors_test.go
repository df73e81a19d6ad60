package http_test

import (
	"context"
	"errors"
	"testing"

	vfhttp "github.com/briceparent/vosfactures/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRejected = errors.New("rejected")

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := vfhttp.NewInterceptorChain()

	var executionOrder []string

	chain.AddRequestInterceptor(func(_ context.Context, _ *vfhttp.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(_ context.Context, _ *vfhttp.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &vfhttp.Request{Method: "GET", Path: "/clients.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := vfhttp.NewInterceptorChain()
	called := false

	chain.AddResponseInterceptor(func(_ context.Context, _ *vfhttp.Request, _ *vfhttp.Response) error {
		return errRejected
	})
	chain.AddResponseInterceptor(func(_ context.Context, _ *vfhttp.Request, _ *vfhttp.Response) error {
		called = true

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &vfhttp.Request{}, &vfhttp.Response{})
	require.ErrorIs(t, err, errRejected)
	assert.False(t, called)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &vfhttp.Request{}

	err := vfhttp.HeaderInterceptor(map[string]string{"X-Tenant": "acme"})(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "acme", req.Headers.Get("X-Tenant"))
}

func TestLoggingResponseInterceptor_LogsFailures(t *testing.T) {
	t.Parallel()

	logger := &MockLogger{}
	interceptor := vfhttp.LoggingResponseInterceptor(logger)

	err := interceptor(context.Background(), &vfhttp.Request{Method: "GET", Path: "/clients.json"}, &vfhttp.Response{Error: errRejected})
	require.NoError(t, err)

	require.Len(t, logger.logs, 1)
	assert.Equal(t, "error", logger.logs[0]["level"])
	assert.Equal(t, "HTTP Response Error", logger.logs[0]["msg"])
}
