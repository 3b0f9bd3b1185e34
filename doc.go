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

/*
Package kasabi provides a lightweight client for the Kasabi dataset API.

# Client

Use NewClient to create a client. This is the major entrance for querying APIs
and updating datasets:

	client, err := kasabi.NewClient(&kasabi.Config{
		APIKey: os.Getenv("KASABI_APIKEY"),
	})
	if err != nil {
		return err
	}
	defer client.Close()

# Query APIs

Query calls a named API. SPARQL-style JSON results are flattened into rows:

	result, err := client.Query(ctx, "sparql", url.Values{
		"query": {"SELECT DISTINCT ?p WHERE { ?s ?p ?o }"},
	})
	if err != nil {
		return err
	}
	for _, row := range result.Rows {
		fmt.Println(row["p"])
	}

# Update Datasets

Load remote data by reference, or upload a local file. Files of
Config.MaxLinesPerPart lines or more are split on line boundaries and uploaded
part by part:

	ds := client.Dataset("my-dataset")
	handles, err := ds.UpdateFromFile(ctx, "data.nt", "text/plain")
	if err != nil {
		var uerr *kasabi.UploadError
		if errors.As(err, &uerr) {
			// handles holds the parts the service accepted before the failure;
			// they are not rolled back.
		}
		return err
	}

Updates are applied asynchronously. Poll the most recent one with IsApplied or
wait for it with WaitUntilApplied:

	if err := client.WaitUntilApplied(ctx); err != nil {
		return err
	}
*/
package kasabi
