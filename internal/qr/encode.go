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

package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

const (
	DefaultSize = 400
	// MinSize is the smallest square that fits a version 1 symbol.
	MinSize = 21
)

// Encode renders content as a size x size QR code image with medium error
// correction and the standard quiet zone.
func Encode(content string, size int) (image.Image, error) {
	if content == "" {
		return nil, fmt.Errorf("nothing to encode")
	}
	if size < MinSize {
		return nil, fmt.Errorf("QR size %d is below the minimum of %d", size, MinSize)
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_M,
	}
	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, size, size, hints)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	return matrix, nil
}

// WritePNG encodes content as a QR code and writes it to w as PNG.
func WritePNG(w io.Writer, content string, size int) error {
	img, err := Encode(content, size)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	return nil
}

// PNG returns content encoded as a PNG QR code.
func PNG(content string, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, content, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes content as a PNG QR code to path.
func WriteFile(path, content string, size int) error {
	data, err := PNG(content, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
