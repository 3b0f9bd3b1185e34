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
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// OutputFormat is the value of the output parameter sent with a query.
type OutputFormat string

const (
	// OutputJSON asks for JSON; the result is decoded and, when tabular, flattened.
	OutputJSON OutputFormat = "json"
	// OutputXML asks for XML; the result is returned raw.
	OutputXML OutputFormat = "xml"
	// OutputTurtle asks for Turtle; the result is returned raw.
	OutputTurtle OutputFormat = "turtle"
	// OutputNTriples asks for N-Triples; the result is returned raw.
	OutputNTriples OutputFormat = "ntriples"
)

type queryOptions struct {
	output OutputFormat
}

// QueryOption configures a single query.
type QueryOption func(*queryOptions)

// WithOutput sets the output format of a query. The default is OutputJSON.
func WithOutput(format OutputFormat) QueryOption {
	return func(o *queryOptions) {
		o.output = format
	}
}

// APIBase returns the prefix shared by every API URI of the service.
func (c *Client) APIBase() string {
	return c.config.Endpoint + "/api/"
}

// APIFullName expands an API name, such as "sparql", into its full URI. A name
// that already is an API URI of the service is returned unchanged.
func (c *Client) APIFullName(nameOrURI string) string {
	base := c.APIBase()
	if strings.HasPrefix(nameOrURI, base) {
		return nameOrURI
	}
	return base + nameOrURI
}

// queryURL builds the request URI: the api key and output format come first,
// then params in key order. A parameter with several values is sent once, its
// values joined with commas.
func (c *Client) queryURL(nameOrURI string, params url.Values, output OutputFormat) (*url.URL, error) {
	var b strings.Builder
	b.WriteString(c.APIFullName(nameOrURI))
	b.WriteString("?apikey=")
	b.WriteString(url.QueryEscape(c.config.APIKey))
	b.WriteString("&output=")
	b.WriteString(url.QueryEscape(string(output)))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(strings.Join(params[k], ",")))
	}
	return url.Parse(b.String())
}

// Query calls the named API with params and returns its result.
//
// With OutputJSON the body is decoded, and SPARQL-style results are flattened
// into rows. Other formats are returned raw. A response outside 2xx yields a
// nil result and an error matching ErrStatus.
func (c *Client) Query(ctx context.Context, nameOrURI string, params url.Values, opts ...QueryOption) (*QueryResult, error) {
	o := queryOptions{output: OutputJSON}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := c.queryURL(nameOrURI, params, o.output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	resp, err := c.get(ctx, "query", u)
	if err != nil {
		return nil, err
	}
	if err := checkStatus2xx("query", resp); err != nil {
		return nil, err
	}

	if o.output != OutputJSON {
		return &QueryResult{Kind: ResultRaw, Raw: resp.Body}, nil
	}
	return decodeQueryResult(resp.Body), nil
}
