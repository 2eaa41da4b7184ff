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

const (
	TagInitiationMethod = "01"
	TagAmount           = "54"
	TagCountryCode      = "58"
	TagChecksum         = "63"

	initiationStatic  = "11"
	initiationDynamic = "12"
	countryIndonesia  = "ID"

	staticMarker  = TagInitiationMethod + "02" + initiationStatic
	dynamicMarker = TagInitiationMethod + "02" + initiationDynamic
	countryAnchor = TagCountryCode + "02" + countryIndonesia
)

// AnchorMode controls how the initiation flag and the country code field are
// located in a static payload.
type AnchorMode string

const (
	// AnchorStructural walks the payload as TLV records, so bytes inside a
	// value (a merchant name containing "5802ID", say) are never mistaken
	// for a field boundary.
	AnchorStructural AnchorMode = "structural"
	// AnchorSubstring searches for the first literal "010211" and "5802ID".
	// It reproduces payloads generated by older tooling byte for byte.
	AnchorSubstring AnchorMode = "substring"
)

// ParseAnchorMode maps a config or flag value to an AnchorMode.
func ParseAnchorMode(s string) (AnchorMode, error) {
	switch AnchorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AnchorStructural:
		return AnchorStructural, nil
	case AnchorSubstring, "legacy":
		return AnchorSubstring, nil
	default:
		return "", fmt.Errorf("unknown anchor mode %q (want structural or substring)", s)
	}
}

// Options tunes a conversion. The zero value uses AnchorStructural.
type Options struct {
	Anchor AnchorMode
}

// Convert turns a static QRIS payload into a dynamic one that carries amount
// and fee, and re-signs it with a fresh checksum. staticPayload must include
// its trailing checksum value.
func Convert(staticPayload, amount string, fee Fee) (string, error) {
	return ConvertWithOptions(staticPayload, amount, fee, Options{})
}

// ConvertWithOptions is Convert with an explicit anchor mode.
func ConvertWithOptions(staticPayload, amount string, fee Fee, opts Options) (string, error) {
	if staticPayload == "" {
		return "", &FieldError{Field: "static payload", Err: ErrMissingRequiredField}
	}
	if amount == "" {
		return "", &FieldError{Field: "amount", Err: ErrMissingRequiredField}
	}

	amountField, err := Encode(TagAmount, amount)
	if err != nil {
		return "", &FieldError{Field: "amount", Err: ErrValueTooLong}
	}
	feeField, err := fee.field()
	if err != nil {
		return "", err
	}

	var head, tail string
	switch opts.Anchor {
	case AnchorStructural, "":
		head, tail, err = splitStructural(staticPayload)
	case AnchorSubstring:
		head, tail, err = splitSubstring(staticPayload)
	default:
		err = fmt.Errorf("unknown anchor mode %q", opts.Anchor)
	}
	if err != nil {
		return "", err
	}

	result := head + amountField + feeField + tail
	return result + Checksum(result), nil
}

// splitSubstring strips the old checksum value, flips the first static
// marker and splits in front of the first country anchor.
func splitSubstring(payload string) (head, tail string, err error) {
	if len(payload) < checksumLen {
		return "", "", malformed(0, "payload shorter than a checksum")
	}
	body := payload[:len(payload)-checksumLen]

	if !strings.Contains(body, staticMarker) {
		return "", "", ErrInitiationTagNotFound
	}
	body = strings.Replace(body, staticMarker, dynamicMarker, 1)

	i := strings.Index(body, countryAnchor)
	if i < 0 {
		return "", "", ErrCountryAnchorNotFound
	}
	return body[:i], body[i:], nil
}

// splitStructural does the same as splitSubstring but locates the tag 01 and
// tag 58 records by parsing the payload.
func splitStructural(payload string) (head, tail string, err error) {
	fields, err := Parse(payload)
	if err != nil {
		return "", "", err
	}
	if len(fields) == 0 {
		return "", "", malformed(0, "no fields")
	}
	last := fields[len(fields)-1]
	if last.Tag != TagChecksum || last.Length != checksumLen {
		return "", "", malformed(last.Offset, "payload does not end with a %s checksum field", ChecksumHeader)
	}

	initiation, ok := findValue(fields, TagInitiationMethod, initiationStatic)
	if !ok {
		return "", "", ErrInitiationTagNotFound
	}
	anchor, ok := findValue(fields, TagCountryCode, countryIndonesia)
	if !ok {
		return "", "", ErrCountryAnchorNotFound
	}

	// The replacement keeps the length, so field offsets stay valid.
	body := payload[:len(payload)-checksumLen]
	body = body[:initiation.Offset] + dynamicMarker + body[initiation.Offset+len(staticMarker):]
	return body[:anchor.Offset], body[anchor.Offset:], nil
}

func findValue(fields []Field, tag, value string) (Field, bool) {
	for _, f := range fields {
		if f.Tag == tag && f.Value == value {
			return f, true
		}
	}
	return Field{}, false
}
