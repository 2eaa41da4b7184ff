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
	"math"
	"strconv"
	"strings"
)

const (
	TagPayloadFormat  = "00"
	TagMCC            = "52"
	TagCurrency       = "53"
	TagMerchantName   = "59"
	TagMerchantCity   = "60"
	TagPostalCode     = "61"
	TagAdditionalData = "62"
	TagLanguage       = "64"
)

// Initiation is the point of initiation method carried in tag 01.
type Initiation string

const (
	InitiationStatic  Initiation = "static"
	InitiationDynamic Initiation = "dynamic"
	InitiationUnknown Initiation = "unknown"
)

// Payload is a parsed QRIS payload.
type Payload struct {
	Raw           string
	Fields        []Field
	ChecksumValid bool
}

// Decode parses payload into its top-level fields and checks its checksum.
// Nested templates (merchant account information, additional data) are kept
// as opaque values.
func Decode(payload string) (*Payload, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, &FieldError{Field: "payload", Err: ErrMissingRequiredField}
	}
	fields, err := Parse(payload)
	if err != nil {
		return nil, err
	}
	p := &Payload{Raw: payload, Fields: fields}
	if last := fields[len(fields)-1]; last.Tag == TagChecksum && last.Length == checksumLen {
		p.ChecksumValid = VerifyChecksum(payload)
	}
	return p, nil
}

// Get returns the value of the first field with tag.
func (p *Payload) Get(tag string) (string, bool) {
	f, ok := Find(p.Fields, tag)
	return f.Value, ok
}

func (p *Payload) value(tag string) string {
	v, _ := p.Get(tag)
	return v
}

// Initiation reports whether the payload is static or dynamic.
func (p *Payload) Initiation() Initiation {
	switch p.value(TagInitiationMethod) {
	case initiationStatic:
		return InitiationStatic
	case initiationDynamic:
		return InitiationDynamic
	default:
		return InitiationUnknown
	}
}

func (p *Payload) MerchantName() string { return p.value(TagMerchantName) }
func (p *Payload) MerchantCity() string { return p.value(TagMerchantCity) }
func (p *Payload) CountryCode() string  { return p.value(TagCountryCode) }
func (p *Payload) Amount() string       { return p.value(TagAmount) }
func (p *Payload) Checksum() string     { return p.value(TagChecksum) }

// Fee returns the convenience fee encoded in tags 55-57, or NoFee.
func (p *Payload) Fee() Fee {
	switch p.value(TagConvenienceIndicator) {
	case indicatorFixed:
		return FixedFee(p.value(TagFeeFixed))
	case indicatorPercent:
		return PercentFee(p.value(TagFeePercent))
	default:
		return NoFee()
	}
}

// IsQRIS reports whether the payload carries the Indonesian country code.
func (p *Payload) IsQRIS() bool {
	return p.CountryCode() == countryIndonesia
}

// TagName returns the EMV merchant-presented mode name of a top-level tag.
func TagName(tag string) string {
	if name, ok := tagNames[tag]; ok {
		return name
	}
	n, err := strconv.Atoi(tag)
	if err != nil {
		return "Unknown"
	}
	switch {
	case n >= 2 && n <= 51:
		return "Merchant Account Information"
	case n >= 65 && n <= 79:
		return "RFU for EMVCo"
	case n >= 80 && n <= 99:
		return "Unreserved Template"
	default:
		return "Unknown"
	}
}

var tagNames = map[string]string{
	TagPayloadFormat:        "Payload Format Indicator",
	TagInitiationMethod:     "Point of Initiation Method",
	TagMCC:                  "Merchant Category Code",
	TagCurrency:             "Transaction Currency",
	TagAmount:               "Transaction Amount",
	TagConvenienceIndicator: "Tip or Convenience Indicator",
	TagFeeFixed:             "Convenience Fee Fixed",
	TagFeePercent:           "Convenience Fee Percentage",
	TagCountryCode:          "Country Code",
	TagMerchantName:         "Merchant Name",
	TagMerchantCity:         "Merchant City",
	TagPostalCode:           "Postal Code",
	TagAdditionalData:       "Additional Data Field Template",
	TagChecksum:             "CRC",
	TagLanguage:             "Merchant Information Language Template",
}

// Total returns what the payer ends up paying: amount plus a fixed fee, or
// amount increased by the fee percentage.
func Total(amount string, fee Fee) (float64, error) {
	a, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	total := a
	if !fee.IsZero() {
		f, err := strconv.ParseFloat(fee.Amount, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing fee %q: %w", fee.Amount, err)
		}
		if fee.Kind == FeePercent {
			total = a + a*f/100
		} else {
			total = a + f
		}
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("total for amount %q and fee %q is not a finite number", amount, fee.Amount)
	}
	return total, nil
}
