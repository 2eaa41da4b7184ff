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
	"fmt"
	"strings"
)

// FeeKind selects how a convenience fee is expressed in a dynamic payload.
type FeeKind string

const (
	FeeNone    FeeKind = "none"
	FeeFixed   FeeKind = "fixed"
	FeePercent FeeKind = "percent"
)

// EMV tags for the tip or convenience indicator and its value fields.
const (
	TagConvenienceIndicator = "55"
	TagFeeFixed             = "56"
	TagFeePercent           = "57"

	// EMV tag 55 values: 01 prompts for a tip, 02 is a fixed convenience
	// fee in tag 56, 03 a percentage in tag 57. A percentage fee is never
	// written as 02.
	indicatorFixed   = "02"
	indicatorPercent = "03"
)

// Fee is a convenience fee request. Build it with NoFee, FixedFee or
// PercentFee so that a kind always carries the amount it needs.
type Fee struct {
	Kind   FeeKind
	Amount string
}

// NoFee returns a fee that adds nothing to the payload.
func NoFee() Fee { return Fee{Kind: FeeNone} }

// FixedFee returns a fee of a fixed rupiah amount.
func FixedFee(amount string) Fee { return Fee{Kind: FeeFixed, Amount: amount} }

// PercentFee returns a fee expressed as a percentage of the amount.
func PercentFee(amount string) Fee { return Fee{Kind: FeePercent, Amount: amount} }

// NewFee builds a Fee from a user-supplied kind name and amount.
func NewFee(kind, amount string) (Fee, error) {
	k, err := ParseFeeKind(kind)
	if err != nil {
		return Fee{}, err
	}
	switch k {
	case FeeFixed:
		return FixedFee(amount), nil
	case FeePercent:
		return PercentFee(amount), nil
	default:
		return NoFee(), nil
	}
}

// ParseFeeKind accepts the long and short names used by chat commands and
// the web form: none/no, fixed/rupiah/r and percent/p.
func ParseFeeKind(s string) (FeeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no":
		return FeeNone, nil
	case "fixed", "rupiah", "r":
		return FeeFixed, nil
	case "percent", "p":
		return FeePercent, nil
	default:
		return "", fmt.Errorf("%w: %q (want none, fixed or percent)", ErrInvalidFeeKind, s)
	}
}

// IsZero reports whether the fee adds nothing.
func (f Fee) IsZero() bool {
	return f.Kind == FeeNone || f.Kind == ""
}

// field renders the tag 55 indicator followed by its 56 or 57 value field.
// It returns "" for FeeNone.
func (f Fee) field() (string, error) {
	var indicator, tag string
	switch f.Kind {
	case FeeNone, "":
		return "", nil
	case FeeFixed:
		indicator, tag = indicatorFixed, TagFeeFixed
	case FeePercent:
		indicator, tag = indicatorPercent, TagFeePercent
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFeeKind, string(f.Kind))
	}

	if f.Amount == "" {
		return "", &FieldError{Field: "fee amount", Err: ErrMissingRequiredField}
	}
	value, err := Encode(tag, f.Amount)
	if err != nil {
		return "", &FieldError{Field: "fee amount", Err: ErrValueTooLong}
	}
	return TagConvenienceIndicator + len2(indicator) + indicator + value, nil
}

func (f Fee) String() string {
	switch f.Kind {
	case FeeFixed:
		return "Rp " + f.Amount
	case FeePercent:
		return f.Amount + "%"
	default:
		return "none"
	}
}
