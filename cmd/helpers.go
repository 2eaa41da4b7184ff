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

package cmd

import (
	"bytes"
	"fmt"

	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/qr"
)

// payloadSource selects where a command reads its payload from.
type payloadSource struct {
	input  string
	qrFile string
	screen bool
}

// read returns the payload text. Input that refers to an image (file path,
// image URL or data URL) is scanned for a QR code.
func (s payloadSource) read() (string, error) {
	switch {
	case s.screen:
		payload, err := qr.ScanScreen()
		if err != nil {
			return "", fmt.Errorf("scanning QR: %w", err)
		}
		return payload, nil
	case s.qrFile != "":
		payload, err := qr.ScanFile(s.qrFile)
		if err != nil {
			return "", fmt.Errorf("scanning QR: %w", err)
		}
		return payload, nil
	}

	if format.IsImageRef(s.input) {
		data, err := format.ReadImage(s.input)
		if err != nil {
			return "", err
		}
		payload, err := qr.ScanImage(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("scanning QR: %w", err)
		}
		return payload, nil
	}

	return format.ReadInput(s.input)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// historyStore returns the configured store, or nil when history is disabled.
func historyStore() *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	return history.NewStore(cfg.HistoryDir())
}

// qrSize picks the PNG size from the flag, then the config, then the default.
func qrSize(flag int) int {
	if flag > 0 {
		return flag
	}
	if cfg.QR.Size > 0 {
		return cfg.QR.Size
	}
	return qr.DefaultSize
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
