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

package web

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/output"
	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

// Decode parses a payload, or the QR code in an image data URL, and returns a
// JSON-serializable map.
func Decode(input string) (map[string]any, error) {
	payload, err := resolvePayload(input, "")
	if err != nil {
		return nil, err
	}

	detected := format.Detect(payload)
	switch detected {
	case format.FormatQRISStatic, format.FormatQRISDynamic, format.FormatEMV:
		p, err := qris.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("parsing payload: %w", err)
		}
		return output.BuildPayloadJSON(p, string(detected)), nil

	default:
		if _, err := qris.Parse(payload); err != nil {
			return nil, fmt.Errorf("parsing payload: %w", err)
		}
		return nil, fmt.Errorf("%w: not an EMV merchant QR payload", qris.ErrMalformedPayload)
	}
}

// resolvePayload returns the payload text from either a raw input string or
// an image data URL. A data URL in input is accepted as an image too.
func resolvePayload(input, image string) (string, error) {
	input = strings.TrimSpace(input)
	if image == "" && format.IsDataURL(input) {
		image, input = input, ""
	}
	if input != "" {
		return input, nil
	}

	_, data, err := format.DecodeDataURL(image)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	payload, err := qr.ScanImage(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return payload, nil
}
