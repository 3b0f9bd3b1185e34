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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Print formats of query results.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatArrow = "arrow"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "query <api> [name=value...]",
		Short: "Call a named API",
		Long: `Call a named API, such as "sparql", or a full API URI with the given
parameters. Repeating a parameter sends its values joined with commas.

Tabular JSON results are printed as a table by default. Use --format json to
print the rows as JSON, or --format arrow to write an Arrow IPC stream.`,
		Example: `  kasabi query sparql 'query=SELECT DISTINCT ?p WHERE { ?s ?p ?o } LIMIT 10'
  kasabi query lookup about=http://example.com/alice --output turtle`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			switch format {
			case formatTable, formatJSON, formatArrow:
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Query(cmd.Context(), args[0], params, kasabi.WithOutput(kasabi.OutputFormat(output)))
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(kasabi.OutputJSON), "output format requested from the service (json, xml, turtle, ntriples)")
	cmd.Flags().StringVar(&format, "format", formatTable, "how to print tabular results (table, json, arrow)")
	return cmd
}

// parseParams turns name=value arguments into query parameters.
func parseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", arg)
		}
		params.Add(name, value)
	}
	return params, nil
}

func printResult(w io.Writer, result *kasabi.QueryResult, format string) error {
	switch result.Kind {
	case kasabi.ResultTabular:
		switch format {
		case formatArrow:
			return result.WriteArrow(w)
		case formatJSON:
			return printJSON(w, result.Rows)
		default:
			return printTable(w, result)
		}
	case kasabi.ResultJSON:
		return printJSON(w, result.Value)
	default:
		_, err := w.Write(result.Raw)
		return err
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, result *kasabi.QueryResult) error {
	data := make(pterm.TableData, 0, len(result.Rows)+1)
	data = append(data, result.Vars)
	for _, row := range result.Rows {
		cells := make([]string, len(result.Vars))
		for i, name := range result.Vars {
			if v, ok := row[name]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		data = append(data, cells)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
