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
	"encoding/json"
)

// ResultKind tells which fields of a QueryResult are populated.
type ResultKind int

const (
	// ResultRaw is a body that was not decoded, either because a non-JSON
	// output format was requested or because the JSON was malformed.
	ResultRaw ResultKind = iota
	// ResultJSON is a decoded JSON value of no known shape.
	ResultJSON
	// ResultTabular is a SPARQL-style result flattened into rows.
	ResultTabular
)

func (k ResultKind) String() string {
	switch k {
	case ResultRaw:
		return "raw"
	case ResultJSON:
		return "json"
	case ResultTabular:
		return "tabular"
	default:
		return "unknown"
	}
}

// Row maps each bound variable of one tabular result to its value.
type Row map[string]any

// QueryResult stores the result of a query.
type QueryResult struct {
	// Kind tells which of the fields below are set.
	Kind ResultKind
	// Vars lists the result variables, in order. Set for ResultTabular.
	Vars []string
	// Rows holds one Row per binding, in order. Set for ResultTabular.
	Rows []Row
	// Value is the decoded JSON. Set for ResultJSON.
	Value any
	// Raw is the response body. Always set.
	Raw []byte
}

// Data returns the most useful form of the result: the rows of a tabular
// result, the decoded value of a JSON result, or the raw body as a string.
func (r *QueryResult) Data() any {
	switch r.Kind {
	case ResultTabular:
		return r.Rows
	case ResultJSON:
		return r.Value
	default:
		return string(r.Raw)
	}
}

// tabularResult is the service's shape for tabular (SPARQL JSON) results:
//
//	{"head": {"vars": [...]}, "results": {"bindings": [{"var": {"value": ...}}, ...]}}
type tabularResult struct {
	Head *struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []map[string]binding `json:"bindings"`
	} `json:"results"`
}

type binding struct {
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

func decodeTabular(data []byte) (*tabularResult, bool) {
	var t tabularResult
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	if t.Head == nil || t.Head.Vars == nil || t.Results == nil || t.Results.Bindings == nil {
		return nil, false
	}
	return &t, true
}

func (t *tabularResult) rows() []Row {
	rows := make([]Row, 0, len(t.Results.Bindings))
	for _, b := range t.Results.Bindings {
		row := make(Row, len(b))
		for name, v := range b {
			row[name] = v.Value
		}
		rows = append(rows, row)
	}
	return rows
}

// decodeQueryResult decodes a JSON response body. It tries the tabular shape
// first, then any JSON value, and falls back to the raw body.
func decodeQueryResult(body []byte) *QueryResult {
	if t, ok := decodeTabular(body); ok {
		return &QueryResult{
			Kind: ResultTabular,
			Vars: t.Head.Vars,
			Rows: t.rows(),
			Raw:  body,
		}
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return &QueryResult{Kind: ResultRaw, Raw: body}
	}
	return &QueryResult{Kind: ResultJSON, Value: v, Raw: body}
}

// Shape flattens a decoded tabular result into rows and returns any other
// value unchanged. Shaping its own output is a no-op.
func Shape(decoded any) any {
	m, ok := decoded.(map[string]any)
	if !ok {
		return decoded
	}
	data, err := json.Marshal(m)
	if err != nil {
		return decoded
	}
	t, ok := decodeTabular(data)
	if !ok {
		return decoded
	}
	return t.rows()
}
