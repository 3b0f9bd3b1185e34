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
	"errors"
	"fmt"
	"path/filepath"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		file        string
		dataURI     string
		contentType string
		wait        bool
	)

	cmd := &cobra.Command{
		Use:   "update <dataset>",
		Short: "Submit an update to a dataset",
		Long: `Submit an update to a dataset, either by asking the service to load remote
data (--uri) or by uploading a local file (--file, "-" for stdin).

Files are split into parts of max_lines_per_part lines. Parts are uploaded in
order and each accepted part prints its status URI. An upload stops at the
first rejected part; parts accepted before it stay applied.`,
		Example: `  kasabi update my-dataset --file data.nt --wait
  kasabi update my-dataset --uri http://example.com/data.nt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			ds := c.Dataset(args[0])
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			switch {
			case dataURI != "":
				handle, err := ds.UpdateFromURI(ctx, dataURI)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, handle)
			default:
				var handles []kasabi.StatusHandle
				if file == "-" {
					handles, err = ds.UpdateFromData(ctx, cmd.InOrStdin(), contentType)
				} else {
					handles, err = ds.UpdateFromFile(ctx, file, contentType)
				}
				for _, h := range handles {
					fmt.Fprintln(out, h)
				}
				if err != nil {
					var uerr *kasabi.UploadError
					if errors.As(err, &uerr) && uerr.Part.Synthetic {
						fmt.Fprintf(cmd.ErrOrStderr(), "%d parts were not uploaded and are kept under %s\n",
							len(uerr.Remaining)+1, filepath.Dir(uerr.Part.Path))
					}
					return err
				}
			}

			if !wait {
				return nil
			}
			if err := c.WaitUntilApplied(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, kasabi.StatusApplied)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `local file to upload, "-" for stdin`)
	cmd.Flags().StringVar(&dataURI, "uri", "", "URI of remote data for the service to load")
	cmd.Flags().StringVarP(&contentType, "content-type", "t", "text/plain", "content type of the uploaded data")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the last update is applied")
	cmd.MarkFlagsMutuallyExclusive("file", "uri")
	cmd.MarkFlagsOneRequired("file", "uri")
	return cmd
}
