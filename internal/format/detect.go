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

package format

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/miezlearning/qris-dev/internal/qris"
)

type PayloadFormat string

const (
	FormatQRISStatic  PayloadFormat = "qris-static"
	FormatQRISDynamic PayloadFormat = "qris-dynamic"
	FormatEMV         PayloadFormat = "emv-mpm"
	FormatImage       PayloadFormat = "image"
	FormatUnknown     PayloadFormat = "unknown"
)

// payloadFormatIndicator opens every EMV merchant-presented payload.
const payloadFormatIndicator = "000201"

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Detect auto-detects what kind of input it was given.
//
// Detection order:
//  1. Image reference (data:image/ URL, or a path or URL ending in an image extension)
//  2. EMV payload format indicator (000201) followed by well-formed TLV
//  3. Country code ID and the point of initiation method split QRIS into static and dynamic
func Detect(input string) PayloadFormat {
	input = strings.TrimSpace(input)
	if input == "" {
		return FormatUnknown
	}

	if IsImageRef(input) {
		return FormatImage
	}

	if !strings.HasPrefix(input, payloadFormatIndicator) {
		return FormatUnknown
	}
	p, err := qris.Decode(input)
	if err != nil {
		return FormatUnknown
	}
	if !p.IsQRIS() {
		return FormatEMV
	}

	switch p.Initiation() {
	case qris.InitiationStatic:
		return FormatQRISStatic
	case qris.InitiationDynamic:
		return FormatQRISDynamic
	default:
		return FormatEMV
	}
}

// IsImageRef reports whether input points at an image rather than holding a
// payload.
func IsImageRef(input string) bool {
	if IsDataURL(input) {
		return true
	}
	path := input
	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		u, err := url.Parse(input)
		if err != nil {
			return false
		}
		path = u.Path
	}
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
