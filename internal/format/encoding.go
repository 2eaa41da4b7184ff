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
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

// IsDataURL reports whether s is a base64 image data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix+"image/")
}

// DecodeDataURL decodes a "data:image/png;base64,..." URL and returns the
// media type and the raw bytes.
func DecodeDataURL(s string) (mediaType string, data []byte, err error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(s[len(dataURLPrefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	mediaType, params, _ := strings.Cut(meta, ";")
	if params != "base64" {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err = DecodeBase64Std(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return mediaType, data, nil
}

// EncodeDataURL renders data as a base64 data URL of the given media type.
func EncodeDataURL(mediaType string, data []byte) string {
	return dataURLPrefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64Std decodes a standard base64-encoded string.
func DecodeBase64Std(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(s)
	}
	return b, err
}
