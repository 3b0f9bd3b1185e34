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
	"io"
	"net/http"
	"strings"
)

// Response is a fully read HTTP response from the Kasabi service.
type Response struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int
	// Header maps lower-cased header names to their values. Repeated headers
	// are joined with ", ".
	Header map[string]string
	// Body is the raw response body.
	Body []byte
}

func newResponse(resp *http.Response) (*Response, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	header := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		header[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       body,
	}, nil
}

// StatusHandle identifies an asynchronously processed update. It is the URI the
// service returns after accepting an update.
type StatusHandle string

// LastResponse returns the most recent response, or nil if none was received.
func (c *Client) LastResponse() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.responses) == 0 {
		return nil
	}
	return c.responses[len(c.responses)-1]
}

// Responses returns every response received by this client, oldest first.
func (c *Client) Responses() []*Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Response(nil), c.responses...)
}

// LastStatusHandle returns the most recent update status handle.
func (c *Client) LastStatusHandle() (StatusHandle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.handles) == 0 {
		return "", false
	}
	return c.handles[len(c.handles)-1], true
}

// StatusHandles returns every update status handle recorded by this client, oldest first.
func (c *Client) StatusHandles() []StatusHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]StatusHandle(nil), c.handles...)
}

func (c *Client) addStatusHandle(h StatusHandle) {
	c.mu.Lock()
	c.handles = append(c.handles, h)
	c.mu.Unlock()
}
