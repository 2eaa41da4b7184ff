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

package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

// Options controls how a manifest is executed.
type Options struct {
	// Concurrency bounds parallel jobs; values below 1 mean 4.
	Concurrency int
	// SkipImages produces payloads without writing PNG files.
	SkipImages bool
}

// Result is the outcome of one job.
type Result struct {
	Name    string
	Amount  string
	Fee     qris.Fee
	Payload string
	Total   float64
	File    string
	Err     error
}

// Run converts every job of m. Job failures are recorded in their Result and
// do not stop the other jobs; the returned error covers problems with the
// manifest as a whole (unreadable source, cancelled context).
func Run(ctx context.Context, m *Manifest, opts Options) ([]Result, error) {
	runID := uuid.New().String()[:8]

	source, err := m.sourcePayload()
	if err != nil {
		return nil, err
	}
	anchor, err := qris.ParseAnchorMode(m.Anchor)
	if err != nil {
		return nil, err
	}

	outDir := m.resolve(m.OutputDir)
	if outDir == "" {
		outDir = m.resolve(".")
	}
	if !opts.SkipImages {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	size := m.QRSize
	if size == 0 {
		size = qr.DefaultSize
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 4
	}
	log.Printf("[BATCH] run=%s jobs=%d concurrency=%d anchor=%s", runID, len(m.Jobs), limit, anchor)

	results := make([]Result, len(m.Jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range m.Jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Name: job.Name, Amount: job.Amount, Err: err}
				return nil
			}
			results[i] = runJob(source, job, anchor, outDir, size, opts.SkipImages)
			if results[i].Err != nil {
				log.Printf("[BATCH] run=%s job=%s failed: %v", runID, job.Name, results[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func runJob(source string, job Job, anchor qris.AnchorMode, outDir string, size int, skipImages bool) Result {
	res := Result{Name: job.Name, Amount: job.Amount}

	fee, err := qris.NewFee(job.FeeKind, job.Fee)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fee = fee

	payload, err := qris.ConvertWithOptions(source, job.Amount, fee, qris.Options{Anchor: anchor})
	if err != nil {
		res.Err = err
		return res
	}
	res.Payload = payload

	if total, err := qris.Total(job.Amount, fee); err == nil {
		res.Total = total
	}

	if skipImages {
		return res
	}
	file := filepath.Join(outDir, job.Name+".png")
	if err := qr.WriteFile(file, payload, size); err != nil {
		res.Err = err
		return res
	}
	res.File = file
	return res
}

func (m *Manifest) sourcePayload() (string, error) {
	if s := strings.TrimSpace(m.Source); s != "" {
		return s, nil
	}
	payload, err := qr.ScanFile(m.resolve(m.SourceImage))
	if err != nil {
		return "", fmt.Errorf("reading source_image: %w", err)
	}
	return payload, nil
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
