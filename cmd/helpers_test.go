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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miezlearning/qris-dev/internal/config"
	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

const testStatic = "00020101021126570011ID.DANA.WWW011893600915302259148102090225914810303UMI" +
	"51450014ID.CO.QRIS.WWW0216ID102001761147300303UMI5204549953033605802ID" +
	"5913Thinker Store6014Kota Samarinda61057511162070703A016304E2E3"

// useConfig replaces the loaded config for the duration of the test.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := config.DefaultConfig()
	c.History.Dir = t.TempDir()
	return c
}

func TestPayloadSource_Read(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "static.txt")
	if err := os.WriteFile(txt, []byte(testStatic+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "static.png")
	if err := qr.WriteFile(png, testStatic, 400); err != nil {
		t.Fatal(err)
	}
	pngBytes, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  payloadSource
	}{
		{"raw payload", payloadSource{input: testStatic}},
		{"text file", payloadSource{input: txt}},
		{"image path", payloadSource{input: png}},
		{"qr flag", payloadSource{qrFile: png}},
		{"data URL", payloadSource{input: format.EncodeDataURL("image/png", pngBytes)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.read()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != testStatic {
				t.Errorf("got %q, want %q", got, testStatic)
			}
		})
	}
}

func TestPayloadSource_ReadErrors(t *testing.T) {
	if _, err := (payloadSource{qrFile: filepath.Join(t.TempDir(), "missing.png")}).read(); err == nil {
		t.Error("expected error for missing QR image")
	}
	if _, err := (payloadSource{input: filepath.Join(t.TempDir(), "missing.png")}).read(); err == nil {
		t.Error("expected error for missing image path")
	}
}

func TestDecodePayload(t *testing.T) {
	p, detected, err := decodePayload(testStatic)
	if err != nil {
		t.Fatal(err)
	}
	if detected != format.FormatQRISStatic {
		t.Errorf("detected = %s", detected)
	}
	if p.MerchantName() != "Thinker Store" {
		t.Errorf("merchant = %q", p.MerchantName())
	}

	if _, _, err := decodePayload("000201010"); !errors.Is(err, qris.ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}
	if _, _, err := decodePayload("5802ID"); err == nil || !strings.Contains(err.Error(), "000201") {
		t.Errorf("expected payload format indicator error, got %v", err)
	}
}

func TestConvertPayload(t *testing.T) {
	useConfig(t, testConfig(t))
	out := filepath.Join(t.TempDir(), "dynamic.png")

	c, err := convertPayload(testStatic, convertOptions{
		amount:  "1500",
		feeKind: "r",
		fee:     "500",
		out:     out,
		size:    300,
		save:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := qris.Convert(testStatic, "1500", qris.FixedFee("500"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Payload != want {
		t.Errorf("payload = %q, want %q", c.Payload, want)
	}
	if c.Total != 2000 {
		t.Errorf("total = %v", c.Total)
	}
	if c.Merchant != "Thinker Store" {
		t.Errorf("merchant = %q", c.Merchant)
	}
	if c.Anchor != qris.AnchorStructural {
		t.Errorf("anchor = %s", c.Anchor)
	}

	scanned, err := qr.ScanFile(out)
	if err != nil {
		t.Fatalf("scanning written PNG: %v", err)
	}
	if scanned != want {
		t.Errorf("PNG holds %q", scanned)
	}

	if c.HistoryID == "" {
		t.Fatal("expected a history ID with save")
	}
	e, err := historyStore().Get(c.HistoryID)
	if err != nil {
		t.Fatalf("saved entry not found: %v", err)
	}
	if e.Payload != want || e.FeeKind != "fixed" || e.Fee != "500" {
		t.Errorf("entry = %+v", e)
	}
}

func TestConvertPayload_ConfigDefaults(t *testing.T) {
	c := testConfig(t)
	c.Anchor = "substring"
	c.Fee = config.FeeConfig{Kind: "percent", Amount: "2"}
	useConfig(t, c)

	got, err := convertPayload(testStatic, convertOptions{amount: "2000"})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := qris.ConvertWithOptions(testStatic, "2000", qris.PercentFee("2"), qris.Options{Anchor: qris.AnchorSubstring})
	if got.Payload != want {
		t.Errorf("payload = %q, want %q", got.Payload, want)
	}
	if got.Total != 2040 {
		t.Errorf("total = %v", got.Total)
	}

	noFee, err := convertPayload(testStatic, convertOptions{amount: "2000", feeKind: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if !noFee.Fee.IsZero() {
		t.Errorf("explicit none should override the config fee, got %+v", noFee.Fee)
	}
}

func TestConvertPayload_LegacyAnchorFlag(t *testing.T) {
	useConfig(t, testConfig(t))
	c, err := convertPayload(testStatic, convertOptions{amount: "1000", legacyAnchor: true})
	if err != nil {
		t.Fatal(err)
	}
	if c.Anchor != qris.AnchorSubstring {
		t.Errorf("anchor = %s, want substring", c.Anchor)
	}
}

func TestConvertPayload_Errors(t *testing.T) {
	c := testConfig(t)
	c.History.Enabled = false
	useConfig(t, c)

	tests := []struct {
		name   string
		source string
		opts   convertOptions
		target error
	}{
		{"missing amount", testStatic, convertOptions{}, qris.ErrMissingRequiredField},
		{"bad fee kind", testStatic, convertOptions{amount: "1", feeKind: "tip"}, qris.ErrInvalidFeeKind},
		{"already dynamic", "00020101021254011" + "5802ID6304ABCD", convertOptions{amount: "1"}, qris.ErrInitiationTagNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convertPayload(tt.source, tt.opts)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}

	_, err := convertPayload(testStatic, convertOptions{amount: "1", save: true})
	if err == nil || !strings.Contains(err.Error(), "history is disabled") {
		t.Errorf("expected history disabled error, got %v", err)
	}
}

func TestResolveFee(t *testing.T) {
	c := testConfig(t)
	c.Fee = config.FeeConfig{Kind: "fixed", Amount: "1000"}
	useConfig(t, c)

	fee, err := resolveFee("", "")
	if err != nil {
		t.Fatal(err)
	}
	if fee != qris.FixedFee("1000") {
		t.Errorf("default fee = %+v", fee)
	}

	fee, err = resolveFee("p", "5")
	if err != nil {
		t.Fatal(err)
	}
	if fee != qris.PercentFee("5") {
		t.Errorf("explicit fee = %+v", fee)
	}
}

func TestHistoryStore_Disabled(t *testing.T) {
	c := testConfig(t)
	c.History.Enabled = false
	useConfig(t, c)

	if historyStore() != nil {
		t.Error("expected nil store when history is disabled")
	}
	if _, err := requireHistory(); err == nil {
		t.Error("expected error from requireHistory")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello..."},
		{"", 5, ""},
		{"ab", 1, "a..."},
	}

	for _, tt := range tests {
		got := truncate(tt.input, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestQRSize(t *testing.T) {
	c := testConfig(t)
	c.QR.Size = 0
	useConfig(t, c)
	if got := qrSize(0); got != qr.DefaultSize {
		t.Errorf("qrSize(0) = %d, want default", got)
	}
	c.QR.Size = 512
	if got := qrSize(0); got != 512 {
		t.Errorf("qrSize(0) = %d, want config 512", got)
	}
	if got := qrSize(300); got != 300 {
		t.Errorf("qrSize(300) = %d, want flag value", got)
	}
}
