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
	"fmt"
)

var (
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrMalformedPayload      = errors.New("malformed payload")
	ErrInitiationTagNotFound = errors.New("static initiation method (010211) not found")
	ErrCountryAnchorNotFound = errors.New("country code anchor (5802ID) not found")
	ErrValueTooLong          = errors.New("value longer than 99 characters")
	ErrInvalidFeeKind        = errors.New("invalid fee kind")
)

// FieldError attaches the name of the offending input to an error.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// OffsetError reports where in a payload the TLV scan stopped.
type OffsetError struct {
	Offset int
	Reason string
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Reason)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}

// Kind returns a stable, machine-readable name for an engine error, or
// "unknown" if err does not wrap one of the package sentinels.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingRequiredField):
		return "missing_required_field"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrInitiationTagNotFound):
		return "initiation_tag_not_found"
	case errors.Is(err, ErrCountryAnchorNotFound):
		return "country_anchor_not_found"
	case errors.Is(err, ErrValueTooLong):
		return "value_too_long"
	case errors.Is(err, ErrInvalidFeeKind):
		return "invalid_fee_kind"
	default:
		return "unknown"
	}
}

func malformed(offset int, format string, args ...any) error {
	return &OffsetError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedPayload}
}
