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
	"os"
	"path/filepath"
	"strings"
	"time"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// keyringService and keyringUser locate the API key in the OS keychain.
	keyringService = "kasabi"
	keyringUser    = "api_key"

	configName = "kasabi"
)

// cliConfig is the command line configuration. Values come from flags, then
// KASABI_* environment variables, then kasabi.yaml, then defaults. The API key
// falls back to the OS keychain when none of those set it.
type cliConfig struct {
	APIKey           string            `mapstructure:"api_key"`
	Endpoint         string            `mapstructure:"endpoint"`
	Timeout          time.Duration     `mapstructure:"timeout"`
	ConnectTimeout   time.Duration     `mapstructure:"connect_timeout"`
	MaxLinesPerPart  int               `mapstructure:"max_lines_per_part"`
	TempDir          string            `mapstructure:"temp_dir"`
	DisableRedirects bool              `mapstructure:"disable_redirects"`
	Headers          map[string]string `mapstructure:"headers"`
	LogLevel         string            `mapstructure:"log_level"`
}

var configKeys = []string{
	"api_key",
	"endpoint",
	"timeout",
	"connect_timeout",
	"max_lines_per_part",
	"temp_dir",
	"disable_redirects",
	"log_level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", kasabi.DefaultEndpoint)
	v.SetDefault("timeout", kasabi.DefaultTimeout)
	v.SetDefault("connect_timeout", kasabi.DefaultConnectTimeout)
	v.SetDefault("max_lines_per_part", kasabi.DefaultMaxLinesPerPart)
	v.SetDefault("log_level", "warn")
}

// loadConfig reads the configuration into v. An explicit file must exist; the
// default kasabi.yaml is looked up in the working directory and the user
// config directory and may be absent.
func loadConfig(v *viper.Viper, file string) (*cliConfig, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("KASABI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	var config cliConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Non-fatal: the keychain may be unavailable, and the key can still be
	// given by flag or environment.
	if config.APIKey == "" {
		if key, err := keyring.Get(keyringService, keyringUser); err == nil {
			config.APIKey = key
		}
	}
	return &config, nil
}

// clientConfig converts the command line configuration for the library.
func (c *cliConfig) clientConfig(logger *zap.Logger) *kasabi.Config {
	return &kasabi.Config{
		APIKey:           c.APIKey,
		Endpoint:         c.Endpoint,
		HTTPHeaders:      c.Headers,
		Timeout:          c.Timeout,
		ConnectTimeout:   c.ConnectTimeout,
		MaxLinesPerPart:  c.MaxLinesPerPart,
		TempDir:          c.TempDir,
		DisableRedirects: c.DisableRedirects,
		Logger:           logger,
	}
}

// newLogger builds a production logger writing to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	logLevel := zap.WarnLevel
	if level != "" {
		if err := logLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	zapConfig.Level = zap.NewAtomicLevelAt(logLevel)
	zapConfig.Encoding = "console"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapConfig.Build(zap.AddStacktrace(zap.ErrorLevel))
}
