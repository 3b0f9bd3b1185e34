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

package kasabi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/stretchr/testify/require"
)

const sparqlResult = `{
	"head": {"vars": ["s", "name"]},
	"results": {"bindings": [
		{"s": {"type": "uri", "value": "http://example.com/alice"}, "name": {"type": "literal", "value": "Alice"}},
		{"s": {"type": "uri", "value": "http://example.com/bob"}}
	]}
}`

// newQueryServer answers every request with code and body and hands the
// request URL to seen.
func newQueryServer(t *testing.T, code int, body string, seen chan<- *url.URL) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen <- r.URL
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIFullName(t *testing.T) {
	c := newTestClient(t, "http://service")

	require.Equal(t, "http://service/api/", c.APIBase())
	require.Equal(t, "http://service/api/sparql", c.APIFullName("sparql"))
	require.Equal(t, "http://service/api/sparql", c.APIFullName("http://service/api/sparql"))
}

func TestQueryURL(t *testing.T) {
	seen := make(chan *url.URL, 1)
	srv := newQueryServer(t, http.StatusOK, sparqlResult, seen)
	c := newTestClient(t, srv.URL)

	_, err := c.Query(context.Background(), "sparql", url.Values{
		"query": {"SELECT ?s WHERE { ?s ?p ?o }"},
		"graph": {"a", "b"},
	})
	require.NoError(t, err)

	u := <-seen
	require.Equal(t, "/api/sparql", u.Path)
	require.Equal(t, "apikey=test-key&output=json&graph=a%2Cb&query=SELECT+%3Fs+WHERE+%7B+%3Fs+%3Fp+%3Fo+%7D", u.RawQuery)
}

func TestQueryFullNameIsNotPrefixedTwice(t *testing.T) {
	seen := make(chan *url.URL, 1)
	srv := newQueryServer(t, http.StatusOK, `{}`, seen)
	c := newTestClient(t, srv.URL)

	_, err := c.Query(context.Background(), srv.URL+"/api/lookup", nil)
	require.NoError(t, err)
	require.Equal(t, "/api/lookup", (<-seen).Path)
}

func TestQueryTabular(t *testing.T) {
	srv := newQueryServer(t, http.StatusOK, sparqlResult, nil)
	c := newTestClient(t, srv.URL)

	result, err := c.Query(context.Background(), "sparql", url.Values{"query": {"SELECT * WHERE { ?s ?p ?o }"}})
	require.NoError(t, err)
	require.Equal(t, kasabi.ResultTabular, result.Kind)
	require.Equal(t, []string{"s", "name"}, result.Vars)
	require.Equal(t, []kasabi.Row{
		{"s": "http://example.com/alice", "name": "Alice"},
		{"s": "http://example.com/bob"},
	}, result.Rows)
	require.JSONEq(t, sparqlResult, string(result.Raw))

	last := c.LastResponse()
	require.NotNil(t, last)
	require.Equal(t, http.StatusOK, last.StatusCode)
	require.Equal(t, "application/json", last.Header["content-type"])
}

func TestQueryGenericJSON(t *testing.T) {
	srv := newQueryServer(t, http.StatusOK, `{"label":"Alice","ids":[1,2]}`, nil)
	c := newTestClient(t, srv.URL)

	result, err := c.Query(context.Background(), "lookup", url.Values{"about": {"http://example.com/alice"}})
	require.NoError(t, err)
	require.Equal(t, kasabi.ResultJSON, result.Kind)
	require.Equal(t, map[string]any{"label": "Alice", "ids": []any{1.0, 2.0}}, result.Value)
	require.Nil(t, result.Rows)
}

func TestQueryMalformedJSONIsRaw(t *testing.T) {
	srv := newQueryServer(t, http.StatusOK, `{"head":`, nil)
	c := newTestClient(t, srv.URL)

	result, err := c.Query(context.Background(), "sparql", nil)
	require.NoError(t, err)
	require.Equal(t, kasabi.ResultRaw, result.Kind)
	require.Equal(t, `{"head":`, string(result.Raw))
}

func TestQueryRawOutput(t *testing.T) {
	seen := make(chan *url.URL, 1)
	body := "<http://example.com/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"
	srv := newQueryServer(t, http.StatusOK, body, seen)
	c := newTestClient(t, srv.URL)

	result, err := c.Query(context.Background(), "sparql", nil, kasabi.WithOutput(kasabi.OutputNTriples))
	require.NoError(t, err)
	require.Equal(t, kasabi.ResultRaw, result.Kind)
	require.Equal(t, body, string(result.Raw))
	require.Equal(t, body, result.Data())
	require.Equal(t, "ntriples", (<-seen).Query().Get("output"))
}

func TestQueryNon2xx(t *testing.T) {
	srv := newQueryServer(t, http.StatusNotFound, `no such api`, nil)
	c := newTestClient(t, srv.URL)

	result, err := c.Query(context.Background(), "missing", nil)
	require.Nil(t, result)
	require.ErrorIs(t, err, kasabi.ErrStatus)

	var kerr *kasabi.Error
	require.True(t, errors.As(err, &kerr))
	require.Equal(t, "query", kerr.Op)
	require.Equal(t, http.StatusNotFound, kerr.Response.StatusCode)
	require.Same(t, c.LastResponse(), kerr.Response)
	require.Equal(t, "query: unexpected response status: 404: no such api", err.Error())
}
