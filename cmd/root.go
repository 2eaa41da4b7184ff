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
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/miezlearning/qris-dev/internal/config"
	"github.com/miezlearning/qris-dev/internal/output"
)

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
	configPath string

	// cfg is loaded before any command runs.
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "qris-dev",
	Short: "Decode QRIS payloads and convert static QRIS into dynamic QRIS",
	Long:  "A local-first CLI for QRIS (Indonesian EMV merchant-presented QR codes). Decodes payloads and QR images, converts static QRIS into dynamic QRIS with an amount and optional convenience fee, and includes a batch runner, a history of generated codes, and a local web UI.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.qris-dev/config.yaml, then ./.qris-dev/config.yaml)")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError(err)
		return err
	}
	return nil
}

func outputOptions() output.Options {
	return output.Options{
		JSON:    jsonOutput,
		NoColor: noColor,
		Verbose: verbose,
	}
}
