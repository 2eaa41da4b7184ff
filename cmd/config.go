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
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/miezlearning/qris-dev/internal/config"
	"github.com/miezlearning/qris-dev/internal/output"
)

var (
	configGlobal bool
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the qris-dev configuration",
}

func init() {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  "Writes a commented default config to ./.qris-dev/config.yaml, or to ~/.qris-dev/config.yaml with --global.",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&configGlobal, "global", false, "Write the global config in the home directory")
	initCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configCmd.AddCommand(initCmd, showCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectPath()
	if configGlobal {
		path = config.GlobalPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if jsonOutput {
		output.PrintJSON(cfg)
		return nil
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Print(string(b))
	return nil
}
