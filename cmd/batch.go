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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/miezlearning/qris-dev/internal/batch"
	"github.com/miezlearning/qris-dev/internal/output"
)

var (
	batchConcurrency int
	batchNoImages    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Convert one static QRIS into many dynamic QRIS from a YAML manifest",
	Long: `Runs every job of a YAML manifest against one static QRIS and writes a PNG per job.

  source: "00020101021126..."   # or source_image: merchant.png
  output_dir: out
  qr_size: 400
  jobs:
    - name: kopi
      amount: "15000"
    - amount: "20000"
      fee_kind: percent
      fee: "0.7"

Paths are relative to the manifest. A failing job is reported and does not stop the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Jobs to run in parallel")
	batchCmd.Flags().BoolVar(&batchNoImages, "no-images", false, "Only print payloads, do not write PNG files")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	m, err := batch.LoadManifest(args[0])
	if err != nil {
		return err
	}
	if m.Anchor == "" {
		m.Anchor = cfg.Anchor
	}
	if m.QRSize == 0 {
		m.QRSize = cfg.QR.Size
	}
	if verbose && !jsonOutput {
		fmt.Fprintf(os.Stderr, "Source: %s\n", truncate(m.Source, 40))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := batch.Run(ctx, m, batch.Options{
		Concurrency: batchConcurrency,
		SkipImages:  batchNoImages,
	})
	if err != nil {
		return err
	}

	output.PrintBatch(results, outputOptions())
	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}
