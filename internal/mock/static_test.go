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

package mock

import (
	"errors"
	"strings"
	"testing"

	"github.com/miezlearning/qris-dev/internal/qris"
)

const testStatic = "00020101021126570011ID.DANA.WWW011893600915302259148102090225914810303UMI" +
	"51450014ID.CO.QRIS.WWW0216ID102001761147300303UMI5204549953033605802ID" +
	"5913Thinker Store6014Kota Samarinda61057511162070703A016304E2E3"

func TestGenerateStatic_ReproducesRealPayload(t *testing.T) {
	got, err := GenerateStatic(StaticConfig{
		MerchantName:  "Thinker Store",
		MerchantCity:  "Kota Samarinda",
		PostalCode:    "75111",
		PAN:           "936009153022591481",
		MerchantID:    "022591481",
		NMID:          "ID10200176114730",
		TerminalLabel: "A01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != testStatic {
		t.Errorf("got\n%s\nwant\n%s", got, testStatic)
	}
}

func TestGenerateStatic_Defaults(t *testing.T) {
	payload, err := GenerateStatic(StaticConfig{MerchantName: "Warung Bu Sri"})
	if err != nil {
		t.Fatal(err)
	}
	if !qris.VerifyChecksum(payload) {
		t.Error("generated payload should carry a valid checksum")
	}

	p, err := qris.Decode(payload)
	if err != nil {
		t.Fatalf("generated payload does not parse: %v", err)
	}
	if p.Initiation() != qris.InitiationStatic {
		t.Errorf("initiation = %s", p.Initiation())
	}
	if p.MerchantCity() != DefaultCity {
		t.Errorf("city = %q", p.MerchantCity())
	}
	if _, ok := p.Get("61"); ok {
		t.Error("postal code should be omitted when empty")
	}
	nmid, _ := p.Get(tagQRISAccount)
	if !strings.Contains(nmid, QRISGUID) || !strings.Contains(nmid, "0216ID") {
		t.Errorf("national template = %q", nmid)
	}

	if _, err := qris.Convert(payload, "10000", qris.NoFee()); err != nil {
		t.Errorf("generated payload should convert: %v", err)
	}
}

func TestGenerateStatic_RandomIDsDiffer(t *testing.T) {
	a, err := GenerateStatic(StaticConfig{MerchantName: "A"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateStatic(StaticConfig{MerchantName: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two generated payloads with random IDs should differ")
	}
}

func TestGenerateStatic_Errors(t *testing.T) {
	if _, err := GenerateStatic(StaticConfig{}); !errors.Is(err, qris.ErrMissingRequiredField) {
		t.Errorf("expected ErrMissingRequiredField, got %v", err)
	}
	if _, err := GenerateStatic(StaticConfig{MerchantName: strings.Repeat("x", 100)}); !errors.Is(err, qris.ErrValueTooLong) {
		t.Errorf("expected ErrValueTooLong, got %v", err)
	}
}
