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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/output"
	"github.com/miezlearning/qris-dev/internal/qris"
)

var decodeFlags payloadSource

var decodeCmd = &cobra.Command{
	Use:   "decode [input]",
	Short: "Decode a QRIS payload or QR image",
	Long:  "Decodes a QRIS payload into its EMV fields and reports the initiation method, merchant, amount, fee and checksum validity. Input can be a raw payload, a file path, a URL, an image (file, URL or data URL), or piped via stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeFlags.qrFile, "qr", "", "Read the payload from a QR code image")
	decodeCmd.Flags().BoolVar(&decodeFlags.screen, "screen", false, "Interactive screen capture (macOS)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	src := decodeFlags
	src.input = firstArg(args)

	raw, err := src.read()
	if err != nil {
		return err
	}

	p, detected, err := decodePayload(raw)
	if err != nil {
		return err
	}
	output.PrintPayload(p, string(detected), outputOptions())
	return nil
}

// decodePayload parses raw and reports its detected format.
func decodePayload(raw string) (*qris.Payload, format.PayloadFormat, error) {
	detected := format.Detect(raw)

	switch detected {
	case format.FormatQRISStatic, format.FormatQRISDynamic, format.FormatEMV:
		p, err := qris.Decode(raw)
		if err != nil {
			return nil, detected, fmt.Errorf("parsing payload: %w", err)
		}
		return p, detected, nil

	default:
		if _, err := qris.Parse(raw); err != nil {
			return nil, detected, fmt.Errorf("parsing payload: %w", err)
		}
		return nil, detected, fmt.Errorf("unable to detect a QRIS payload (no 000201 payload format indicator)")
	}
}
