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
	"fmt"

	kasabi "github.com/kasabi/kasabi-sdk/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string

	config *cliConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "kasabi",
		Short: "Query and update Kasabi datasets",
		Long: `kasabi calls the APIs of the Kasabi dataset service and submits updates to
datasets. Large files are split on line boundaries and uploaded part by part.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./kasabi.yaml or <user config dir>/kasabi/kasabi.yaml)")
	flags.String("api-key", "", "Kasabi API key (or KASABI_API_KEY, or run kasabi login)")
	flags.String("endpoint", "", "Kasabi service endpoint (default "+kasabi.DefaultEndpoint+")")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = a.v.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	cmd.AddCommand(
		newQueryCmd(a),
		newUpdateCmd(a),
		newStatusCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	config, err := loadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return err
	}
	a.config = config
	a.logger = logger
	return nil
}

// newClient creates a library client from the loaded configuration.
func (a *app) newClient() (*kasabi.Client, error) {
	c, err := kasabi.NewClient(a.config.clientConfig(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%w: set KASABI_API_KEY, pass --api-key or run kasabi login", err)
	}
	return c, nil
}
