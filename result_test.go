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
	"encoding/json"
	"testing"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestShapeFlattensTabularResult(t *testing.T) {
	decoded := decodeJSON(t, `{"head":{"vars":["p"]},"results":{"bindings":[{"p":{"value":"x"}}]}}`)
	require.Equal(t, []kasabi.Row{{"p": "x"}}, kasabi.Shape(decoded))
}

func TestShapeKeepsBindingOrder(t *testing.T) {
	decoded := decodeJSON(t, `{
		"head": {"vars": ["s", "o"]},
		"results": {"bindings": [
			{"s": {"type": "uri", "value": "http://example.com/a"}, "o": {"type": "literal", "value": "1"}},
			{"s": {"type": "uri", "value": "http://example.com/b"}},
			{"s": {"type": "uri", "value": "http://example.com/c"}, "o": {"type": "literal", "value": "3"}}
		]}
	}`)

	require.Equal(t, []kasabi.Row{
		{"s": "http://example.com/a", "o": "1"},
		{"s": "http://example.com/b"},
		{"s": "http://example.com/c", "o": "3"},
	}, kasabi.Shape(decoded))
}

func TestShapeIsIdempotent(t *testing.T) {
	decoded := decodeJSON(t, `{"head":{"vars":["p"]},"results":{"bindings":[{"p":{"value":"x"}},{"p":{"value":"y"}}]}}`)

	once := kasabi.Shape(decoded)
	require.Equal(t, once, kasabi.Shape(once))
}

func TestShapePassesThroughOtherShapes(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{"object", `{"name":"kasabi","items":[1,2]}`},
		{"head only", `{"head":{"vars":["p"]}}`},
		{"results only", `{"results":{"bindings":[]}}`},
		{"vars not a list", `{"head":{"vars":"p"},"results":{"bindings":[]}}`},
		{"array", `[{"p":"x"}]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			decoded := decodeJSON(t, tc.data)
			require.Equal(t, decoded, kasabi.Shape(decoded))
		})
	}
}

func TestShapeEmptyBindings(t *testing.T) {
	decoded := decodeJSON(t, `{"head":{"vars":["p"]},"results":{"bindings":[]}}`)
	require.Equal(t, []kasabi.Row{}, kasabi.Shape(decoded))
}

func TestResultKindString(t *testing.T) {
	require.Equal(t, "raw", kasabi.ResultRaw.String())
	require.Equal(t, "json", kasabi.ResultJSON.String())
	require.Equal(t, "tabular", kasabi.ResultTabular.String())
	require.Equal(t, "unknown", kasabi.ResultKind(42).String())
}

func TestQueryResultData(t *testing.T) {
	rows := []kasabi.Row{{"p": "x"}}
	require.Equal(t, rows, (&kasabi.QueryResult{Kind: kasabi.ResultTabular, Rows: rows}).Data())
	require.Equal(t, 1.0, (&kasabi.QueryResult{Kind: kasabi.ResultJSON, Value: 1.0}).Data())
	require.Equal(t, "<a> <b> <c> .", (&kasabi.QueryResult{Kind: kasabi.ResultRaw, Raw: []byte("<a> <b> <c> .")}).Data())
}
