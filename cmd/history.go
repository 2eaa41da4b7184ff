// Copyright 2026 The qris-dev Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and manage saved dynamic QRIS",
	Long:  "Shows dynamic payloads recorded with 'convert --save' or the web UI. IDs may be shortened to any unique prefix.",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func init() {
	historyCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved entries, newest first",
			Args:  cobra.NoArgs,
			RunE:  runHistoryList,
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one saved entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := requireHistory()
				if err != nil {
					return err
				}
				e, err := store.Get(args[0])
				if err != nil {
					return err
				}
				output.PrintHistoryEntry(e, outputOptions())
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"remove", "delete"},
			Short:   "Remove a saved entry",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := requireHistory()
				if err != nil {
					return err
				}
				if err := store.Remove(args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all saved entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := requireHistory()
				if err != nil {
					return err
				}
				n, err := store.Clear()
				if err != nil {
					return err
				}
				fmt.Printf("Removed %d entries\n", n)
				return nil
			},
		},
	)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := requireHistory()
	if err != nil {
		return err
	}
	entries, err := store.List()
	if err != nil {
		return err
	}
	output.PrintHistory(entries, outputOptions())
	return nil
}

func requireHistory() (*history.Store, error) {
	store := historyStore()
	if store == nil {
		return nil, fmt.Errorf("history is disabled in config (history.enabled: false)")
	}
	return store, nil
}
