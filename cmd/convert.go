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
	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

type convertOptions struct {
	payloadSource
	amount       string
	feeKind      string
	fee          string
	out          string
	size         int
	legacyAnchor bool
	save         bool
}

var convertFlags convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert [input] --amount AMOUNT",
	Short: "Convert a static QRIS into a dynamic QRIS with an amount",
	Long: `Converts a static QRIS payload into a dynamic one that carries a transaction
amount and an optional convenience fee, and re-signs it with a fresh CRC.

The fee is either a fixed rupiah amount (--fee-kind fixed) or a percentage of
the amount (--fee-kind percent). Without --fee-kind the configured default fee
is used. Input can be a raw payload, a file path, a URL, an image, or stdin.`,
	Example: `  qris-dev convert static.txt --amount 15000
  qris-dev convert --qr merchant.png --amount 20000 --fee-kind percent --fee 0.7 --out pay.png
  pbpaste | qris-dev convert --amount 5000 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.amount, "amount", "", "Transaction amount (required)")
	f.StringVar(&convertFlags.feeKind, "fee-kind", "", "Fee kind: none, fixed (r) or percent (p)")
	f.StringVar(&convertFlags.fee, "fee", "", "Fee value: rupiah for fixed, percent for percent")
	f.StringVar(&convertFlags.qrFile, "qr", "", "Read the static payload from a QR code image")
	f.BoolVar(&convertFlags.screen, "screen", false, "Interactive screen capture (macOS)")
	f.StringVarP(&convertFlags.out, "out", "o", "", "Write the dynamic QR code as PNG to this file")
	f.IntVar(&convertFlags.size, "size", 0, "PNG size in pixels (default from config)")
	f.BoolVar(&convertFlags.legacyAnchor, "legacy-anchor", false, "Locate 010211 and 5802ID by substring search instead of parsing fields")
	f.BoolVar(&convertFlags.save, "save", false, "Record the result in history")
	convertCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := convertFlags
	opts.input = firstArg(args)

	source, err := opts.read()
	if err != nil {
		return err
	}

	c, err := convertPayload(source, opts)
	if err != nil {
		return err
	}
	output.PrintConversion(c, outputOptions())
	return nil
}

// convertPayload runs the conversion and its side effects (PNG file,
// history entry) with defaults taken from cfg.
func convertPayload(source string, opts convertOptions) (*output.Conversion, error) {
	fee, err := resolveFee(opts.feeKind, opts.fee)
	if err != nil {
		return nil, err
	}

	anchor := cfg.AnchorMode()
	if opts.legacyAnchor {
		anchor = qris.AnchorSubstring
	}

	payload, err := qris.ConvertWithOptions(source, opts.amount, fee, qris.Options{Anchor: anchor})
	if err != nil {
		return nil, err
	}

	c := &output.Conversion{
		Amount:  opts.amount,
		Fee:     fee,
		Anchor:  anchor,
		Payload: payload,
	}
	// The engine accepts any amount text; a total is only shown for numbers.
	if total, err := qris.Total(opts.amount, fee); err == nil {
		c.Total = total
	}
	if p, err := qris.Decode(payload); err == nil {
		c.Merchant = p.MerchantName()
	}

	if opts.out != "" {
		if err := qr.WriteFile(opts.out, payload, qrSize(opts.size)); err != nil {
			return nil, err
		}
		c.File = opts.out
	}

	if opts.save {
		store := historyStore()
		if store == nil {
			return nil, fmt.Errorf("history is disabled in config; remove --save or set history.enabled")
		}
		e, err := store.Add(history.Entry{
			Merchant: c.Merchant,
			Amount:   c.Amount,
			FeeKind:  string(fee.Kind),
			Fee:      fee.Amount,
			Total:    c.Total,
			Payload:  payload,
			Source:   source,
		})
		if err != nil {
			return nil, fmt.Errorf("saving history: %w", err)
		}
		c.HistoryID = e.ID
	}

	return c, nil
}

// resolveFee uses the configured default fee when no kind was given.
func resolveFee(kind, amount string) (qris.Fee, error) {
	if kind == "" {
		return cfg.DefaultFee()
	}
	return qris.NewFee(kind, amount)
}
