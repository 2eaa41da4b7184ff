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

	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/web"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve [input]",
	Short: "Start a local web UI for decoding and converting QRIS",
	Long:  "Starts a local HTTP server with a web UI and JSON API for decoding QRIS payloads, converting static QRIS into dynamic QRIS, and browsing the history. Optionally pass a payload to pre-fill the input.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	var prefill string
	if len(args) > 0 {
		raw, err := format.ReadInputRaw(args[0])
		if err != nil {
			return err
		}
		prefill = raw
	}

	p := port
	if p == 0 {
		p = cfg.Serve.Port
	}

	fmt.Printf("Starting qris-dev web UI at http://localhost:%d\n", p)
	return web.ListenAndServe(p, web.Options{
		Prefill: prefill,
		Config:  cfg,
		History: historyStore(),
	})
}
