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
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an API key in the OS keychain",
		Long: `Store an API key in the OS keychain so later commands can use it without
KASABI_API_KEY or --api-key. The key is taken from --api-key or
KASABI_API_KEY when set, otherwise read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := a.v.GetString("api_key")
			if key == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read API key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return errors.New("API key is empty")
			}

			if err := keyring.Set(keyringService, keyringUser, key); err != nil {
				return fmt.Errorf("failed to store API key in keychain: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keychain")
			return nil
		},
	}
}

func newLogoutCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the API key from the OS keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := keyring.Delete(keyringService, keyringUser)
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to remove API key from keychain: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keychain")
			return nil
		},
	}
}
