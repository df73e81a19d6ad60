package vfclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/briceparent/vosfactures/internal/client"
	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/pkg/vfclient"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := vfclient.New(context.Background(), nil)
	require.ErrorIs(t, err, vosfactures.ErrConfigRequired)

	_, err = vfclient.New(context.Background(), &vosfactures.Config{APIToken: "t"})
	require.ErrorIs(t, err, vosfactures.ErrHostRequired)

	_, err = vfclient.New(context.Background(), &vosfactures.Config{Host: "acme.vosfactures.fr"})
	require.ErrorIs(t, err, vosfactures.ErrAPITokenRequired)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = vfclient.NewWithToken(ctx, "acme.vosfactures.fr", "t")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_NormalizesHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want string
	}{
		{host: "acme.vosfactures.fr", want: "https://acme.vosfactures.fr"},
		{host: "  acme.vosfactures.fr/ ", want: "https://acme.vosfactures.fr"},
		{host: "http://127.0.0.1:8080/", want: "http://127.0.0.1:8080"},
		{host: "HTTPS://acme.vosfactures.fr", want: "HTTPS://acme.vosfactures.fr"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			cli, err := vfclient.NewWithToken(context.Background(), tt.host, "t")
			require.NoError(t, err)

			concrete, ok := cli.(*client.Client)
			require.True(t, ok)
			assert.Equal(t, tt.want, concrete.BaseURL())
		})
	}

	_, err := vfclient.NewWithToken(context.Background(), "   ", "t")
	require.ErrorIs(t, err, vosfactures.ErrHostRequired)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/departments.json", request.URL.Path)
		_, _ = writer.Write([]byte(`[{"id": 1, "name": "Paris", "shortcut": "PAR"}]`))
	}))
	defer server.Close()

	cli, err := vfclient.NewWithToken(context.Background(), server.URL+"/", "t")
	require.NoError(t, err)

	departments, err := cli.Departments().List(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "Paris (PAR)", departments[0].String())
	require.NoError(t, cli.Close())
}

func TestNewFromSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Setenv(constants.EnvHost, "")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := "host: " + server.URL + "\napi_token: t\nlog_level: error\navailable_commands:\n  product: [list]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cli, err := vfclient.NewFromSettings(context.Background(), path)
	require.NoError(t, err)

	products, err := cli.Products().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = cli.Clients().List(context.Background())
	assert.True(t, vosfactures.IsCommandUnavailable(err))
}

func TestNewFromSettings_Invalid(t *testing.T) {
	t.Setenv(constants.EnvHost, "")

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("host: acme.vosfactures.fr\n"), 0o600))

	_, err := vfclient.NewFromSettings(context.Background(), path)
	require.ErrorIs(t, err, constants.ErrNoTokenConfigured)

	t.Setenv(constants.EnvHost, "acme.vosfactures.fr")
	t.Setenv("VOSFACTURES_API_TOKEN", "t")
	t.Setenv("VOSFACTURES_NATS_URL", "nats://127.0.0.1:1")

	_, err = vfclient.NewFromSettings(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to NATS")
}
