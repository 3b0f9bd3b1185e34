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
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ArrowSchema returns the Arrow schema of a tabular result: one nullable
// string column per variable, in variable order.
func (r *QueryResult) ArrowSchema() (*arrow.Schema, error) {
	if r.Kind != ResultTabular {
		return nil, fmt.Errorf("unexpected result kind: %s", r.Kind)
	}
	fields := make([]arrow.Field, 0, len(r.Vars))
	for _, name := range r.Vars {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true})
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToArrowRecord reads the tabular result and returns its rows as one Arrow
// record. Variables left unbound in a row become nulls. The caller must
// Release the record.
//
// This method is only valid if the result is tabular.
func (r *QueryResult) ToArrowRecord(mem memory.Allocator) (arrow.Record, error) {
	schema, err := r.ArrowSchema()
	if err != nil {
		return nil, err
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, row := range r.Rows {
		for i, name := range r.Vars {
			fb := b.Field(i).(*array.StringBuilder)
			switch v := row[name].(type) {
			case nil:
				fb.AppendNull()
			case string:
				fb.Append(v)
			default:
				fb.Append(fmt.Sprint(v))
			}
		}
	}
	return b.NewRecord(), nil
}

// WriteArrow writes the tabular result to w as an Arrow IPC stream.
func (r *QueryResult) WriteArrow(w io.Writer) (err error) {
	rec, err := r.ToArrowRecord(memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer rec.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	defer func() {
		err = errors.Join(err, writer.Close())
	}()

	return writer.Write(rec)
}
