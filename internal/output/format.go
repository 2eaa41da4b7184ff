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
	"errors"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/qris"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders v with Indonesian digit grouping, e.g. "Rp 10.000".
func FormatRupiah(v float64) string {
	if v == math.Trunc(v) {
		return "Rp " + idPrinter.Sprintf("%d", int64(v))
	}
	return "Rp " + idPrinter.Sprintf("%.2f", v)
}

// formatAmount formats a numeric amount string as rupiah and returns s
// unchanged when it is not a number.
func formatAmount(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return FormatRupiah(v)
}

func formatFee(f qris.Fee) string {
	switch f.Kind {
	case qris.FeeFixed:
		return formatAmount(f.Amount)
	case qris.FeePercent:
		return f.Amount + "%"
	default:
		return "-"
	}
}

// ErrorHint returns a short suggestion for a conversion error, or "" when
// there is nothing to add to the error text.
func ErrorHint(err error) string {
	switch {
	case errors.Is(err, qris.ErrInitiationTagNotFound):
		return "the payload is not a static QRIS (no 010211 flag); it may already be dynamic"
	case errors.Is(err, qris.ErrCountryAnchorNotFound):
		return "the payload has no Indonesian country code (5802ID); only QRIS can be converted"
	case errors.Is(err, qris.ErrMalformedPayload):
		return "the payload is not valid TLV; check that it was copied completely, or retry with --legacy-anchor"
	case errors.Is(err, qris.ErrValueTooLong):
		return "amounts and fees are limited to 99 characters"
	case errors.Is(err, qris.ErrInvalidFeeKind):
		return "use --fee-kind none, fixed (r) or percent (p)"
	case errors.Is(err, qris.ErrMissingRequiredField):
		return "provide a payload, --amount, and --fee when a fee kind is set"
	case errors.Is(err, history.ErrNotFound):
		return "run 'qris-dev history list' to see saved IDs"
	}
	return ""
}
