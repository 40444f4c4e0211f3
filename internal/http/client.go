// Package http wraps the platform's REST transport: URL assembly, auth
// headers, retries for transient failures, and classification of error
// responses into the typed taxonomy.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/qubelint-io/qapi-client/internal/auth"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

const defaultUserAgent = "qapi-client/1.0"

// Request is a single API call before transport concerns are applied.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string

	// Body is JSON-encoded when set.
	Body interface{}
	// Form is form-encoded when set; write endpoints on the platform take
	// form parameters rather than JSON bodies. Body and Form are mutually
	// exclusive, Form wins.
	Form url.Values
}

// Response is the raw result of an API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the shared HTTP transport beneath every resource client.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	basicUser    string
	basicPass    string
	userAgent    string
	logger       qapi.Logger
	debug        bool
	interceptors *qapi.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for transport logs.
func WithLogger(logger qapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithBasicAuth switches the transport to HTTP basic credentials. Used when
// no user token is configured.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.basicUser = username
		c.basicPass = password
	}
}

// WithInterceptors installs a caller-supplied interceptor chain. Request
// interceptors run after auth headers are applied and may rewrite them;
// response interceptors observe every completed exchange.
func WithInterceptors(chain *qapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithRetryConfig tunes the retry wrapper.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout sets the per-attempt timeout of the underlying client.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport for baseURL. A nil tokenManager sends
// unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	// Hand back the final response after retries are exhausted so a
	// persistent 5xx still classifies by status instead of degrading to a
	// generic transport error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes req. Non-2xx responses come back as a typed *qapi.APIError
// alongside the raw response; transport failures with no response map to
// the network or timeout kinds.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// The interceptor request shares the header map with the real request,
	// so header mutations take effect.
	interceptReq := &qapi.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header,
	}

	if c.interceptors != nil {
		if err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq); err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, qapi.NewNetworkError(fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         httpReq.URL.String(),
			"status_code": resp.StatusCode,
		})
	}

	var apiErr error
	if resp.StatusCode >= 400 {
		apiErr = qapi.Classify(resp.StatusCode, body, httpResp.Header)
	}

	if c.interceptors != nil {
		interceptResp := &qapi.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       body,
			Error:      apiErr,
		}

		if err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp); err != nil {
			return resp, err
		}
	}

	if apiErr != nil {
		return resp, apiErr
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostForm performs a POST request with form-encoded parameters.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var (
		rawBody     []byte
		contentType string
		err         error
	)

	switch {
	case len(req.Form) > 0:
		rawBody = []byte(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		rawBody, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		contentType = "application/json"
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(rawBody))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if err := c.applyAuth(ctx, httpReq); err != nil {
		return nil, err
	}

	return httpReq, nil
}

func (c *Client) applyAuth(ctx context.Context, httpReq *retryablehttp.Request) error {
	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting authentication token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)

		return nil
	}

	if c.basicUser != "" {
		httpReq.SetBasicAuth(c.basicUser, c.basicPass)
	}

	return nil
}

// classifyTransportError maps a failure with no HTTP response onto the
// timeout or network kinds.
func classifyTransportError(err error) *qapi.APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return qapi.NewTimeoutError(err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return qapi.NewTimeoutError(err)
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return qapi.NewTimeoutError(err)
	}

	return qapi.NewNetworkError(err)
}
