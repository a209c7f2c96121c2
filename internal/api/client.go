// Package api implements the HTTP client for the deployment server's REST
// API. Every failure is returned as a normalized RequestError; callers never
// see a raw transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harborview-io/harborview/internal/store"
)

// requestTimeout is the fixed timeout for every HTTP round trip.
const requestTimeout = 15 * time.Second

// identityHeader carries the personal access token.
const identityHeader = "x-api-key"

// Client executes requests against the configured endpoint with the stored
// credential attached. It performs no retries; retrying is caller policy.
type Client struct {
	httpc          *http.Client
	endpoints      *store.EndpointStore
	credentials    *store.CredentialStore
	onUnauthorized func()
}

// NewClient creates a Client over the given endpoint and credential stores.
func NewClient(endpoints *store.EndpointStore, credentials *store.CredentialStore) *Client {
	return &Client{
		httpc:       &http.Client{Timeout: requestTimeout},
		endpoints:   endpoints,
		credentials: credentials,
	}
}

// SetUnauthorizedHandler registers a callback invoked whenever a non-probe
// request is answered with 401. The session manager uses it to force logout.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// RequestOptions describes a single request.
type RequestOptions struct {
	Method string
	Path   string // endpoint path relative to /api, e.g. "project.all"
	Query  url.Values
	Body   any
	Header http.Header // caller overrides; a caller-supplied identity header always wins

	// Endpoint and Token bypass the stores for the credential-validation
	// probe. Probe also switches 404 classification to notFound.
	Endpoint string
	Token    string
	Probe    bool
}

// Do executes the request and returns the raw response body or a
// RequestError. The payload is not schema-validated here; decoding is the
// caller's concern.
func (c *Client) Do(ctx context.Context, opts RequestOptions) (json.RawMessage, *RequestError) {
	base := store.APIBaseOf(store.Normalize(opts.Endpoint))
	if base == "" {
		base = c.endpoints.APIBaseURL()
	}
	if base == "" {
		return nil, newGenericError("server endpoint not configured")
	}

	target := base + "/" + strings.TrimPrefix(opts.Path, "/")
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, newGenericError("encode request body: " + err.Error())
		}
		body = bytes.NewReader(data)
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, newGenericError(err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	c.attachCredential(req, opts)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// No HTTP response at all: DNS, connect, or timeout failure.
		return nil, &RequestError{
			Kind:    KindNetworkUnreachable,
			Message: "unable to reach server",
			Raw:     err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{
			Kind:       KindNetworkUnreachable,
			Message:    "unable to read server response",
			StatusCode: resp.StatusCode,
			Raw:        err,
		}
	}

	if resp.StatusCode >= 400 {
		reqErr := classifyResponse(resp.StatusCode, data, opts.Probe)
		if reqErr.Kind == KindUnauthorized && !opts.Probe && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, reqErr
	}

	return data, nil
}

// attachCredential sets the identity header unless the caller already did.
// Never attach two conflicting identity headers: an explicit caller-supplied
// one wins.
func (c *Client) attachCredential(req *http.Request, opts RequestOptions) {
	if req.Header.Get(identityHeader) != "" || req.Header.Get("Authorization") != "" {
		return
	}
	token := opts.Token
	if token == "" && !opts.Probe {
		token = c.credentials.Get()
	}
	if token != "" {
		req.Header.Set(identityHeader, token)
	}
}

// Get issues a GET request against the configured endpoint.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, *RequestError) {
	return c.Do(ctx, RequestOptions{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request against the configured endpoint.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, *RequestError) {
	return c.Do(ctx, RequestOptions{Method: http.MethodPost, Path: path, Body: body})
}
