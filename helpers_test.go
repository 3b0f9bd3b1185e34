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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testAPIKey = "test-key"

// newTestClient creates a client pointed at endpoint with small, test friendly
// defaults. Each option may adjust the config before the client is built.
func newTestClient(t *testing.T, endpoint string, opts ...func(*kasabi.Config)) *kasabi.Client {
	t.Helper()

	config := &kasabi.Config{
		APIKey:   testAPIKey,
		Endpoint: endpoint,
		TempDir:  t.TempDir(),
		Logger:   zaptest.NewLogger(t),
	}
	for _, opt := range opts {
		opt(config)
	}

	c, err := kasabi.NewClient(config)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func withMaxLines(n int) func(*kasabi.Config) {
	return func(c *kasabi.Config) {
		c.MaxLinesPerPart = n
	}
}

func withTempDir(dir string) func(*kasabi.Config) {
	return func(c *kasabi.Config) {
		c.TempDir = dir
	}
}

// writeFile writes content to a new file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeTriples returns n N-Triples lines.
func fakeTriples(f *gofakeit.Faker, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "<%s/%d> <http://xmlns.com/foaf/0.1/name> %q .\n", f.URL(), i, f.Name())
	}
	return b.String()
}

func tempDirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
