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

package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/miezlearning/qris-dev/internal/batch"
	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/qris"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	valueColor   = color.New(color.FgWhite)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)

	// timeNow is the function used to get the current time. Override in tests.
	timeNow = time.Now
)

// relativeTime returns a human-readable relative duration string for t.
// Future times return "in X units", past times return "X units ago".
func relativeTime(t time.Time) string {
	now := timeNow()
	d := t.Sub(now)
	if d < 0 {
		d = -d
		return formatDuration(d) + " ago"
	}
	return "in " + formatDuration(d)
}

func formatDuration(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d >= 60*day:
		months := int(d / (30 * day))
		if months == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	case d >= 2*day:
		return fmt.Sprintf("%d days", int(d/day))
	case d >= day:
		return "1 day"
	case d >= 2*time.Hour:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	case d >= time.Hour:
		return "1 hour"
	case d >= 2*time.Minute:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	default:
		return "1 minute"
	}
}

// BuildPayloadJSON returns the JSON-serializable map for a decoded payload.
func BuildPayloadJSON(p *qris.Payload, format string) map[string]any {
	fields := make([]map[string]any, len(p.Fields))
	for i, f := range p.Fields {
		fields[i] = map[string]any{
			"tag":    f.Tag,
			"name":   qris.TagName(f.Tag),
			"length": f.Length,
			"value":  f.Value,
			"offset": f.Offset,
		}
	}
	out := map[string]any{
		"format":        format,
		"initiation":    string(p.Initiation()),
		"merchantName":  p.MerchantName(),
		"merchantCity":  p.MerchantCity(),
		"countryCode":   p.CountryCode(),
		"checksum":      p.Checksum(),
		"checksumValid": p.ChecksumValid,
		"fields":        fields,
	}
	if amount := p.Amount(); amount != "" {
		out["amount"] = amount
	}
	if fee := p.Fee(); !fee.IsZero() {
		out["fee"] = map[string]any{
			"kind":   string(fee.Kind),
			"amount": fee.Amount,
		}
	}
	return out
}

// PrintPayload prints a decoded QRIS payload to the terminal.
func PrintPayload(p *qris.Payload, format string, opts Options) {
	if opts.JSON {
		PrintJSON(BuildPayloadJSON(p, format))
		return
	}

	title := "EMV Merchant QR"
	if p.IsQRIS() {
		title = "QRIS"
	}
	headerColor.Printf("%s (%s)\n", title, p.Initiation())
	headerColor.Println(strings.Repeat("─", 50))

	printSection("Merchant")
	printKV("Name", p.MerchantName(), 1)
	printKV("City", p.MerchantCity(), 1)
	printKV("Country", p.CountryCode(), 1)

	if amount := p.Amount(); amount != "" {
		printSection("Transaction")
		printKV("Amount", formatAmount(amount), 1)
		if fee := p.Fee(); !fee.IsZero() {
			printKV("Fee", formatFee(fee), 1)
			if total, err := qris.Total(amount, fee); err == nil {
				printKV("Total", FormatRupiah(total), 1)
			}
		}
	}

	printSection("Checksum")
	switch {
	case p.ChecksumValid:
		successColor.Printf("  ✓ %s\n", p.Checksum())
	case p.Checksum() == "":
		warnColor.Println("  ⚠ no CRC field")
	default:
		errorColor.Printf("  ✗ %s (expected %s)\n", p.Checksum(), qris.Checksum(p.Raw[:len(p.Raw)-4]))
	}

	printSection(fmt.Sprintf("Fields (%d)", len(p.Fields)))
	for _, f := range p.Fields {
		labelColor.Printf("  %s ", f.Tag)
		dimColor.Printf("%-32s ", qris.TagName(f.Tag))
		valueColor.Println(f.Value)
		if opts.Verbose {
			dimColor.Printf("     offset=%d length=%d\n", f.Offset, f.Length)
		}
	}

	fmt.Println()
}

// Conversion is the result of turning a static payload into a dynamic one.
type Conversion struct {
	Merchant  string
	Amount    string
	Fee       qris.Fee
	Total     float64
	Anchor    qris.AnchorMode
	Payload   string
	File      string
	HistoryID string
}

// BuildConversionJSON returns the JSON-serializable map for a conversion.
func BuildConversionJSON(c *Conversion) map[string]any {
	out := map[string]any{
		"payload":  c.Payload,
		"merchant": c.Merchant,
		"amount":   c.Amount,
		"total":    c.Total,
		"anchor":   string(c.Anchor),
	}
	if !c.Fee.IsZero() {
		out["fee"] = map[string]any{
			"kind":   string(c.Fee.Kind),
			"amount": c.Fee.Amount,
		}
	}
	if c.File != "" {
		out["file"] = c.File
	}
	if c.HistoryID != "" {
		out["id"] = c.HistoryID
	}
	return out
}

// PrintConversion prints a conversion summary followed by the dynamic
// payload on its own line.
func PrintConversion(c *Conversion, opts Options) {
	if opts.JSON {
		PrintJSON(BuildConversionJSON(c))
		return
	}

	headerColor.Println("Dynamic QRIS")
	headerColor.Println(strings.Repeat("─", 50))

	printSection("Summary")
	if c.Merchant != "" {
		printKV("Merchant", c.Merchant, 1)
	}
	printKV("Amount", formatAmount(c.Amount), 1)
	if !c.Fee.IsZero() {
		printKV("Fee", formatFee(c.Fee), 1)
	}
	printKV("Total", FormatRupiah(c.Total), 1)
	if opts.Verbose {
		printKV("Anchor", string(c.Anchor), 1)
	}
	if c.File != "" {
		printKV("Image", c.File, 1)
	}
	if c.HistoryID != "" {
		printKV("Saved", c.HistoryID, 1)
	}

	printSection("Payload")
	fmt.Printf("  %s\n", c.Payload)
	fmt.Println()
}

// PrintHistory prints saved entries, newest first.
func PrintHistory(entries []history.Entry, opts Options) {
	if opts.JSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		PrintJSON(entries)
		return
	}

	if len(entries) == 0 {
		dimColor.Println("No saved payloads.")
		return
	}

	headerColor.Printf("History (%d)\n", len(entries))
	headerColor.Println(strings.Repeat("─", 50))
	for _, e := range entries {
		id := e.ID
		if len(id) > 8 && !opts.Verbose {
			id = id[:8]
		}
		labelColor.Printf("  %s  ", id)
		valueColor.Printf("%-14s", FormatRupiah(e.Total))
		if e.Merchant != "" {
			fmt.Printf("  %s", e.Merchant)
		}
		dimColor.Printf("  %s\n", relativeTime(e.CreatedAt))
	}
	fmt.Println()
}

// PrintHistoryEntry prints one saved entry in full.
func PrintHistoryEntry(e history.Entry, opts Options) {
	if opts.JSON {
		PrintJSON(e)
		return
	}

	headerColor.Printf("History %s\n", e.ID)
	headerColor.Println(strings.Repeat("─", 50))
	printSection("Summary")
	printKV("Created", e.CreatedAt.Format(time.RFC3339)+dimColor.Sprintf(" (%s)", relativeTime(e.CreatedAt)), 1)
	if e.Merchant != "" {
		printKV("Merchant", e.Merchant, 1)
	}
	printKV("Amount", formatAmount(e.Amount), 1)
	if e.FeeKind != "" && e.FeeKind != string(qris.FeeNone) {
		printKV("Fee", formatFee(qris.Fee{Kind: qris.FeeKind(e.FeeKind), Amount: e.Fee}), 1)
	}
	printKV("Total", FormatRupiah(e.Total), 1)
	if e.Source != "" {
		printKV("Source", e.Source, 1)
	}
	printSection("Payload")
	fmt.Printf("  %s\n", e.Payload)
	fmt.Println()
}

// BuildBatchJSON returns the JSON-serializable list of batch results.
func BuildBatchJSON(results []batch.Result) []map[string]any {
	out := make([]map[string]any, len(results))
	for i, r := range results {
		m := map[string]any{
			"name":   r.Name,
			"amount": r.Amount,
		}
		if r.Err != nil {
			m["error"] = r.Err.Error()
			m["kind"] = qris.Kind(r.Err)
		} else {
			m["payload"] = r.Payload
			m["total"] = r.Total
			if r.File != "" {
				m["file"] = r.File
			}
		}
		out[i] = m
	}
	return out
}

// PrintBatch prints one line per batch job and a closing tally.
func PrintBatch(results []batch.Result, opts Options) {
	if opts.JSON {
		PrintJSON(BuildBatchJSON(results))
		return
	}

	headerColor.Printf("Batch (%d jobs)\n", len(results))
	headerColor.Println(strings.Repeat("─", 50))
	for _, r := range results {
		if r.Err != nil {
			errorColor.Printf("  ✗ %s: %v\n", r.Name, r.Err)
			continue
		}
		successColor.Printf("  ✓ %s", r.Name)
		fmt.Printf("  %s", FormatRupiah(r.Total))
		if r.File != "" {
			dimColor.Printf("  %s", r.File)
		}
		fmt.Println()
		if opts.Verbose {
			dimColor.Printf("    %s\n", r.Payload)
		}
	}

	failed := batch.Failed(results)
	fmt.Println()
	if failed == 0 {
		successColor.Printf("All %d jobs converted\n", len(results))
	} else {
		warnColor.Printf("%d of %d jobs failed\n", failed, len(results))
	}
}

func printSection(title string) {
	fmt.Println()
	headerColor.Printf("┌ %s\n", title)
}

func printKV(key, value string, indent int) {
	prefix := strings.Repeat("  ", indent)
	labelColor.Printf("%s%s: ", prefix, key)
	valueColor.Println(value)
}

// PrintError prints an error message, followed by a hint for known
// conversion errors.
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("Error:"), err)
	if hint := ErrorHint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", dimColor.Sprint("Hint:"), hint)
	}
}
