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

package qris

import (
	"errors"
	"math"
	"testing"
)

func TestDecode_Static(t *testing.T) {
	p, err := Decode(testStatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Initiation() != InitiationStatic {
		t.Errorf("Initiation = %q, want static", p.Initiation())
	}
	if p.MerchantName() != "Thinker Store" {
		t.Errorf("MerchantName = %q", p.MerchantName())
	}
	if p.MerchantCity() != "Kota Samarinda" {
		t.Errorf("MerchantCity = %q", p.MerchantCity())
	}
	if !p.IsQRIS() {
		t.Error("expected country code ID")
	}
	if p.Amount() != "" {
		t.Errorf("static payload should have no amount, got %q", p.Amount())
	}
	if !p.Fee().IsZero() {
		t.Errorf("static payload should have no fee, got %+v", p.Fee())
	}
	if !p.ChecksumValid {
		t.Error("checksum should be valid")
	}
	if p.Checksum() != "E2E3" {
		t.Errorf("Checksum = %q", p.Checksum())
	}
}

func TestDecode_Dynamic(t *testing.T) {
	out, err := Convert(testStatic, "1500", FixedFee("500"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	if p.Initiation() != InitiationDynamic {
		t.Errorf("Initiation = %q, want dynamic", p.Initiation())
	}
	if p.Amount() != "1500" {
		t.Errorf("Amount = %q", p.Amount())
	}
	if got := p.Fee(); got != FixedFee("500") {
		t.Errorf("Fee = %+v", got)
	}
	if !p.ChecksumValid {
		t.Error("converted payload should carry a valid checksum")
	}
}

func TestDecode_InvalidChecksum(t *testing.T) {
	p, err := Decode(testStub)
	if err != nil {
		t.Fatal(err)
	}
	if p.ChecksumValid {
		t.Error("placeholder checksum should be reported invalid")
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode("   "); !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("expected ErrMissingRequiredField, got %v", err)
	}
	if _, err := Decode("000201010"); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tag, want string
	}{
		{"00", "Payload Format Indicator"},
		{"01", "Point of Initiation Method"},
		{"26", "Merchant Account Information"},
		{"51", "Merchant Account Information"},
		{"54", "Transaction Amount"},
		{"58", "Country Code"},
		{"63", "CRC"},
		{"70", "RFU for EMVCo"},
		{"85", "Unreserved Template"},
		{"xx", "Unknown"},
	}
	for _, tt := range tests {
		if got := TagName(tt.tag); got != tt.want {
			t.Errorf("TagName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		fee    Fee
		want   float64
	}{
		{"no fee", "10000", NoFee(), 10000},
		{"fixed", "1500", FixedFee("500"), 2000},
		{"percent", "2000", PercentFee("2"), 2040},
		{"fractional percent", "1000", PercentFee("0.7"), 1007},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Total(tt.amount, tt.fee)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Total = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Total("abc", NoFee()); err == nil {
		t.Error("expected error for non-numeric amount")
	}
	if _, err := Total("100", FixedFee("x")); err == nil {
		t.Error("expected error for non-numeric fee")
	}
}

func TestTotal_NonFinite(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		fee    Fee
	}{
		{"NaN amount", "NaN", NoFee()},
		{"infinite amount", "Inf", NoFee()},
		{"negative infinity", "-Inf", NoFee()},
		{"NaN fee", "100", FixedFee("NaN")},
		{"infinite percent", "100", PercentFee("+Inf")},
		{"overflowing sum", "1.7e308", FixedFee("1.7e308")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := Total(tt.amount, tt.fee); err == nil {
				t.Errorf("expected error, got %v", got)
			}
		})
	}
}
