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
	"github.com/miezlearning/qris-dev/internal/mock"
	"github.com/miezlearning/qris-dev/internal/output"
	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

var (
	mockConfig mock.StaticConfig
	mockOut    string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Generate a test static QRIS",
	Long:  "Generates a static QRIS payload with a valid checksum for development and testing. Account numbers and the NMID are random unless given. The payload is not linked to a real merchant account.",
	Args:  cobra.NoArgs,
	RunE:  runMock,
}

func init() {
	f := mockCmd.Flags()
	f.StringVar(&mockConfig.MerchantName, "merchant", "QRIS Dev Store", "Merchant name")
	f.StringVar(&mockConfig.MerchantCity, "city", mock.DefaultCity, "Merchant city")
	f.StringVar(&mockConfig.PostalCode, "postal", "", "Postal code")
	f.StringVar(&mockConfig.MCC, "mcc", mock.DefaultMCC, "Merchant category code")
	f.StringVar(&mockConfig.GUID, "guid", mock.DefaultGUID, "Acquirer domain for the merchant account template")
	f.StringVar(&mockConfig.NMID, "nmid", "", "National merchant ID (random if omitted)")
	f.StringVar(&mockConfig.Criteria, "criteria", mock.DefaultCriteria, "Merchant criteria: UMI, UKE, UME or UBE")
	f.StringVar(&mockConfig.TerminalLabel, "terminal", "", "Terminal label (additional data tag 07)")
	f.StringVarP(&mockOut, "out", "o", "", "Write the QR code as PNG to this file")
	rootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	payload, err := mock.GenerateStatic(mockConfig)
	if err != nil {
		return err
	}

	if mockOut != "" {
		if err := qr.WriteFile(mockOut, payload, qrSize(0)); err != nil {
			return err
		}
	}

	if !jsonOutput && !verbose {
		fmt.Println(payload)
		return nil
	}
	p, err := qris.Decode(payload)
	if err != nil {
		return err
	}
	output.PrintPayload(p, string(format.FormatQRISStatic), outputOptions())
	return nil
}
