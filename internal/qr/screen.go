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
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/miezlearning/qris-dev/internal/format"
)

// goos is overridden in tests.
var goos = runtime.GOOS

// ScanScreen lets the user drag a rectangle around a QRIS code shown on screen
// (a merchant sticker photo, a marketplace page) and decodes it. Only macOS
// ships an interactive capture tool we can drive.
func ScanScreen() (string, error) {
	if goos != "darwin" {
		return "", fmt.Errorf("--screen is only supported on macOS; use --qr with an image file instead")
	}

	tmpDir, err := os.MkdirTemp("", "qris-dev-qr-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	capture := filepath.Join(tmpDir, "capture.png")

	var stderr bytes.Buffer
	cmd := exec.Command("screencapture", "-i", "-x", capture)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "cannot capture") || strings.Contains(msg, "image from rect") {
			_ = exec.Command("open", "x-apple.systempreferences:com.apple.preference.security?Privacy_ScreenCapture").Run()
			return "", fmt.Errorf("screen recording permission denied\n\nSystem Settings has been opened to the Screen Recording pane.\nGrant access to your terminal app, then re-run the command.")
		}
		return "", fmt.Errorf("screencapture failed: %s", msg)
	}

	// Escape cancels the selection and leaves no file behind.
	if _, err := os.Stat(capture); err != nil {
		return "", fmt.Errorf("screen capture cancelled")
	}

	payload, err := ScanFile(capture)
	if err != nil {
		return "", err
	}
	return checkScreenPayload(payload)
}

// checkScreenPayload rejects captures that decoded to something other than a
// merchant payload, such as a link QR sitting next to the QRIS sticker.
func checkScreenPayload(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	switch format.Detect(payload) {
	case format.FormatQRISStatic, format.FormatQRISDynamic, format.FormatEMV:
		return payload, nil
	default:
		return "", fmt.Errorf("captured QR code does not hold a QRIS payload: %q", truncate(payload, 40))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
