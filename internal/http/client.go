// Package http implements the VosFactures JSON transport on top of
// hashicorp/go-retryablehttp.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/briceparent/vosfactures/internal/constants"
	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

var _ vosfactures.Transport = (*Client)(nil)

// expectedStatus lists, per verb, the status codes treated as success.
var expectedStatus = map[string][]int{
	http.MethodGet:    {http.StatusOK, http.StatusNoContent, http.StatusResetContent},
	http.MethodPost:   {http.StatusCreated},
	http.MethodPut:    {http.StatusOK},
	http.MethodDelete: {http.StatusOK},
}

// Client is the HTTP transport for the VosFactures API. Every call makes a
// single attempt; failures are reported to the caller without retrying.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *retryablehttp.Client
	logger     vosfactures.Logger
	debug      bool
	userAgent  string
	chain      *InterceptorChain
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
	// LogBody is the body with secrets masked, used for logs and errors.
	LogBody  []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger vosfactures.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the timeout of each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(c *Client) {
		c.chain.AddRequestInterceptor(interceptor)
	}
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(c *Client) {
		c.chain.AddResponseInterceptor(interceptor)
	}
}

// NewClient creates a new HTTP transport for the account host.
func NewClient(host, apiToken string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    NormalizeHost(host),
		apiToken:   apiToken,
		httpClient: retryClient,
		logger:     vosfactures.NoopLogger(),
		userAgent:  constants.DefaultUserAgent,
		chain:      NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Logger = &leveledLogger{logger: client.logger}

	if client.debug {
		client.chain.AddRequestInterceptor(LoggingInterceptor(client.logger))
		client.chain.AddResponseInterceptor(LoggingResponseInterceptor(client.logger))
	}

	return client
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NormalizeHost turns an account host into a base URL. A host that already
// carries a scheme is kept as is.
func NormalizeHost(host string) string {
	base := strings.TrimSuffix(strings.TrimSpace(host), "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	return base
}

// ResourcePath returns the path of a resource collection or instance.
func ResourcePath(page, instanceID string) string {
	if instanceID == "" {
		return "/" + page + ".json"
	}

	return "/" + page + "/" + url.PathEscape(instanceID) + ".json"
}

// Fetch performs a GET request.
func (c *Client) Fetch(ctx context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return c.execute(ctx, http.MethodGet, call)
}

// Create performs a POST request.
func (c *Client) Create(ctx context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return c.execute(ctx, http.MethodPost, call)
}

// Replace performs a PUT request.
func (c *Client) Replace(ctx context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return c.execute(ctx, http.MethodPut, call)
}

// Remove performs a DELETE request.
func (c *Client) Remove(ctx context.Context, call *vosfactures.Call) (vosfactures.Body, error) {
	return c.execute(ctx, http.MethodDelete, call)
}

// Do executes a request through the interceptor chain.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Headers == nil {
		req.Headers = make(http.Header)
	}

	req.Headers.Set("Accept", constants.ContentTypeJSON)
	req.Headers.Set("Content-Type", constants.ContentTypeJSON)
	req.Headers.Set("User-Agent", c.userAgent)
	req.Headers.Set(constants.RequestIDHeader, uuid.NewString())

	err := c.chain.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, req.Body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		httpReq.Header[key] = values
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		_ = c.chain.ExecuteResponseInterceptors(ctx, req, &Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	err = c.chain.ExecuteResponseInterceptors(ctx, req, response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (c *Client) execute(ctx context.Context, method string, call *vosfactures.Call) (vosfactures.Body, error) {
	body, masked, err := c.envelope(call)
	if err != nil {
		return nil, err
	}

	path := ResourcePath(call.Endpoint.Page, call.InstanceID)

	resp, err := c.Do(ctx, &Request{
		Method:  method,
		Path:    path,
		Body:    body,
		LogBody: masked,
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if !slices.Contains(expectedStatus[method], resp.StatusCode) {
		return nil, &vosfactures.HTTPError{
			StatusCode:   resp.StatusCode,
			Method:       method,
			URL:          c.baseURL + path,
			RequestBody:  string(masked),
			ResponseBody: resp.Body,
		}
	}

	return vosfactures.Body(resp.Body), nil
}

// envelope encodes {"api_token": <token>, "<action>": fields} along with a
// copy whose token is masked.
func (c *Client) envelope(call *vosfactures.Call) ([]byte, []byte, error) {
	fields := call.Fields
	if fields == nil {
		fields = vosfactures.Fields{}
	}

	body, err := json.Marshal(map[string]any{
		constants.APITokenKey: c.apiToken,
		call.Endpoint.Action:  fields,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encoding %s request: %w", call.Endpoint.Action, err)
	}

	masked, err := json.Marshal(map[string]any{
		constants.APITokenKey: constants.MaskedSecret,
		call.Endpoint.Action:  fields,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encoding %s request: %w", call.Endpoint.Action, err)
	}

	return body, masked, nil
}

// neverRetry hands every response back to the caller and surfaces transport
// or context errors unchanged.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}
