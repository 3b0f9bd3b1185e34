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

package itcases

import (
	"os"
	"testing"

	"github.com/lucasepe/codename"
	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func NewClient(t testing.TB) *kasabi.Client {
	apiKey := os.Getenv("KASABI_APIKEY")

	if apiKey == "" {
		t.Skip("KASABI_APIKEY not set")
		return nil // unreachable
	}

	c, err := kasabi.NewClient(&kasabi.Config{
		APIKey:          apiKey,
		Endpoint:        os.Getenv("KASABI_ENDPOINT"),
		MaxLinesPerPart: 100,
		TempDir:         t.TempDir(),
		Logger:          zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return c
}

// Dataset returns the dataset updates are written to.
func Dataset(t testing.TB, c *kasabi.Client) *kasabi.Dataset {
	name := os.Getenv("KASABI_DATASET")

	if name == "" {
		t.Skip("KASABI_DATASET not set")
		return nil // unreachable
	}

	return c.Dataset(name)
}

func RandomName(t testing.TB) string {
	rng, err := codename.DefaultRNG()
	require.NoError(t, err)
	return codename.Generate(rng, 10)
}
