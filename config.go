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
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the base URL of the Kasabi service.
	DefaultEndpoint = "http://api.kasabi.com"
	// DefaultTimeout bounds a whole request, including reading the body.
	DefaultTimeout = 600 * time.Second
	// DefaultConnectTimeout bounds establishing a connection.
	DefaultConnectTimeout = 5 * time.Second
	// DefaultMaxLinesPerPart is the number of lines per uploaded part.
	//
	// The service rejects payloads over 2MB, and 10000 N-Triples lines stay
	// under that for typical data.
	DefaultMaxLinesPerPart = 10000
)

// Config defines the configuration for the client.
type Config struct {
	// APIKey is the Kasabi API key. Required.
	APIKey string `json:"api_key"`
	// Endpoint is the URL of the Kasabi service. Defaults to DefaultEndpoint.
	Endpoint string `json:"endpoint"`
	// HTTPHeaders are sent with every request.
	HTTPHeaders map[string]string `json:"http_headers"`
	// Timeout bounds a whole request. Defaults to DefaultTimeout.
	Timeout time.Duration `json:"timeout"`
	// ConnectTimeout bounds dialing the service. Defaults to DefaultConnectTimeout.
	ConnectTimeout time.Duration `json:"connect_timeout"`
	// MaxLinesPerPart is the maximum number of lines in one uploaded part.
	// Defaults to DefaultMaxLinesPerPart.
	MaxLinesPerPart int `json:"max_lines_per_part"`
	// TempDir is where part files and temporary data files are written.
	// Defaults to os.TempDir().
	TempDir string `json:"temp_dir"`
	// DisableRedirects stops the client from following redirects.
	DisableRedirects bool `json:"disable_redirects"`
	// Logger receives request and upload events. Defaults to a no-op logger.
	Logger *zap.Logger `json:"-"`
}

// withDefaults returns a copy of the config with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.MaxLinesPerPart <= 0 {
		c.MaxLinesPerPart = DefaultMaxLinesPerPart
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	headers := make(map[string]string, len(c.HTTPHeaders))
	for k, v := range c.HTTPHeaders {
		headers[k] = v
	}
	c.HTTPHeaders = headers
	return c
}
