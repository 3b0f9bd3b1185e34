/*
 * Copyright 2026 Kasabi SDK Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kasabi

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"
)

// HTTPClient is the interface for HTTP client.
type HTTPClient interface {
	// Get sends a GET request to the Kasabi service.
	Get(context.Context, *url.URL) (*http.Response, error)
	// Post sends a POST request with the given content type to the Kasabi service.
	Post(ctx context.Context, u *url.URL, contentType string, body []byte) (*http.Response, error)
	// Close releases idle connections.
	Close()
}

type httpClient struct {
	client  *http.Client
	headers map[string]string
}

// NewHTTPClient creates a new internal HTTP client from the config's timeouts,
// headers and redirect policy.
func NewHTTPClient(config *Config) HTTPClient {
	cfg := config.withDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout: cfg.ConnectTimeout,
	}).DialContext

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	if cfg.DisableRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &httpClient{
		client:  client,
		headers: cfg.HTTPHeaders,
	}
}

// Ensure httpClient implements HTTPClient.
var _ HTTPClient = (*httpClient)(nil)

func (c *httpClient) Get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.client.Do(req)
}

func (c *httpClient) Post(ctx context.Context, u *url.URL, contentType string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.client.Do(req)
}

func (c *httpClient) Close() {
	c.client.CloseIdleConnections()
}

func (c *httpClient) setHeaders(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// Client is a Kasabi API client.
//
// A Client records every response it receives and every update status handle
// it is given, in order. It issues one request at a time; use a separate
// Client per concurrent task.
type Client struct {
	config Config
	http   HTTPClient
	logger *zap.Logger

	mu        sync.Mutex
	responses []*Response
	handles   []StatusHandle
}

// NewClient creates a new client.
func NewClient(config *Config) (*Client, error) {
	if config == nil || config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewClientWithHTTPClient(config, NewHTTPClient(config))
}

// NewClientWithHTTPClient creates a new client that sends requests through the
// given HTTPClient.
func NewClientWithHTTPClient(config *Config, hc HTTPClient) (*Client, error) {
	if config == nil || config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := config.withDefaults()
	return &Client{
		config: cfg,
		http:   hc,
		logger: cfg.Logger,
	}, nil
}

// Close closes the client.
//
// You don't typically need to call this as the garbage collector will release
// the resources when the client is no longer referenced. However, it can be
// useful to call this if you want to release the resources immediately.
func (c *Client) Close() {
	c.http.Close()
}

// get issues a GET, records the response and returns it. The body is fully read.
func (c *Client) get(ctx context.Context, op string, u *url.URL) (*Response, error) {
	resp, err := c.http.Get(ctx, u)
	return c.record(op, http.MethodGet, u, resp, err)
}

// post issues a POST, records the response and returns it. The body is fully read.
func (c *Client) post(ctx context.Context, op string, u *url.URL, contentType string, body []byte) (*Response, error) {
	resp, err := c.http.Post(ctx, u, contentType, body)
	return c.record(op, http.MethodPost, u, resp, err)
}

func (c *Client) record(op, method string, u *url.URL, resp *http.Response, err error) (*Response, error) {
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", redactURL(u)),
			zap.Error(err))
		return nil, newError(ErrTransport, op, err)
	}
	defer sneakyBodyClose(resp.Body)

	r, err := newResponse(resp)
	if err != nil {
		return nil, newError(ErrTransport, op, err)
	}

	c.mu.Lock()
	c.responses = append(c.responses, r)
	c.mu.Unlock()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", redactURL(u)),
		zap.Int("status", r.StatusCode))
	return r, nil
}

// redactURL renders u with the api key query parameter masked.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if !q.Has("apikey") {
		return u.String()
	}
	q.Set("apikey", "***")
	masked := *u
	masked.RawQuery = q.Encode()
	return masked.String()
}
