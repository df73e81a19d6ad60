package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testToken = "test-token"

type route struct {
	status int
	body   string
}

type apiRequest struct {
	Method   string
	Path     string
	Envelope map[string]json.RawMessage
}

// fakeAPI serves canned responses keyed by "METHOD /path" and records every
// request envelope.
type fakeAPI struct {
	server   *httptest.Server
	mu       sync.Mutex
	routes   map[string]route
	requests []apiRequest
}

func newFakeAPI(t *testing.T, routes map[string]route) *fakeAPI {
	t.Helper()

	api := &fakeAPI{routes: routes}
	api.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		var envelope map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(raw, &envelope))

		var token string
		assert.NoError(t, json.Unmarshal(envelope["api_token"], &token))
		assert.Equal(t, testToken, token)

		api.mu.Lock()
		api.requests = append(api.requests, apiRequest{Method: request.Method, Path: request.URL.Path, Envelope: envelope})
		api.mu.Unlock()

		answer, ok := api.routes[request.Method+" "+request.URL.Path]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"code": "error", "message": "not found"}`))

			return
		}

		writer.WriteHeader(answer.status)
		_, _ = writer.Write([]byte(answer.body))
	}))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) URL() string {
	return a.server.URL
}

func (a *fakeAPI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests)
}

func (a *fakeAPI) last() apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.requests[len(a.requests)-1]
}
