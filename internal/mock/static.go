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

// Package mock generates static QRIS payloads for development and testing.
package mock

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/miezlearning/qris-dev/internal/qris"
)

// Default merchant values, taken from a real DANA static QRIS.
const (
	DefaultGUID     = "ID.DANA.WWW"
	DefaultCriteria = "UMI"
	DefaultMCC      = "5499"
	DefaultCity     = "Jakarta"

	// QRISGUID identifies the national QRIS template in tag 51.
	QRISGUID = "ID.CO.QRIS.WWW"
)

// Template tags used by the generator.
const (
	tagMerchantAccount = "26"
	tagQRISAccount     = "51"
	subGUID            = "00"
	subPAN             = "01"
	subMerchantID      = "02"
	subCriteria        = "03"
	subTerminalLabel   = "07"
)

// StaticConfig holds options for generating a static QRIS. Empty PAN,
// MerchantID and NMID are filled with random digits.
type StaticConfig struct {
	MerchantName  string
	MerchantCity  string
	PostalCode    string
	MCC           string
	GUID          string
	PAN           string
	MerchantID    string
	NMID          string
	Criteria      string
	TerminalLabel string
}

// GenerateStatic builds a static QRIS payload with a valid checksum.
func GenerateStatic(cfg StaticConfig) (string, error) {
	if strings.TrimSpace(cfg.MerchantName) == "" {
		return "", &qris.FieldError{Field: "merchant name", Err: qris.ErrMissingRequiredField}
	}
	cfg = withDefaults(cfg)
	for _, v := range []*string{&cfg.PAN, &cfg.MerchantID} {
		if *v == "" {
			d, err := randomDigits(18)
			if err != nil {
				return "", err
			}
			*v = d
		}
	}
	if cfg.NMID == "" {
		d, err := randomDigits(14)
		if err != nil {
			return "", err
		}
		cfg.NMID = "ID" + d
	}

	account, err := template(
		subGUID, cfg.GUID,
		subPAN, cfg.PAN,
		subMerchantID, cfg.MerchantID,
		subCriteria, cfg.Criteria,
	)
	if err != nil {
		return "", err
	}
	national, err := template(
		subGUID, QRISGUID,
		subMerchantID, cfg.NMID,
		subCriteria, cfg.Criteria,
	)
	if err != nil {
		return "", err
	}

	pairs := []string{
		"00", "01",
		qris.TagInitiationMethod, "11",
		tagMerchantAccount, account,
		tagQRISAccount, national,
		"52", cfg.MCC,
		"53", "360",
		qris.TagCountryCode, "ID",
		"59", cfg.MerchantName,
		"60", cfg.MerchantCity,
	}
	if cfg.PostalCode != "" {
		pairs = append(pairs, "61", cfg.PostalCode)
	}
	if cfg.TerminalLabel != "" {
		additional, err := template(subTerminalLabel, cfg.TerminalLabel)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, "62", additional)
	}

	body, err := template(pairs...)
	if err != nil {
		return "", err
	}
	body += qris.ChecksumHeader
	return body + qris.Checksum(body), nil
}

func withDefaults(cfg StaticConfig) StaticConfig {
	if cfg.MerchantCity == "" {
		cfg.MerchantCity = DefaultCity
	}
	if cfg.MCC == "" {
		cfg.MCC = DefaultMCC
	}
	if cfg.GUID == "" {
		cfg.GUID = DefaultGUID
	}
	if cfg.Criteria == "" {
		cfg.Criteria = DefaultCriteria
	}
	return cfg
}

// template encodes tag/value pairs in order.
func template(pairs ...string) (string, error) {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		f, err := qris.Encode(pairs[i], pairs[i+1])
		if err != nil {
			return "", fmt.Errorf("field %s: %w", pairs[i], err)
		}
		b.WriteString(f)
	}
	return b.String(), nil
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generating digits: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
