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
	"log"

	"github.com/miezlearning/qris-dev/internal/format"
	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/qr"
	"github.com/miezlearning/qris-dev/internal/qris"
)

// ConvertRequest is the body of POST /api/convert. Image is a data URL and
// is only used when Input is empty. An empty FeeKind falls back to the
// configured default fee.
type ConvertRequest struct {
	Input        string `json:"input"`
	Image        string `json:"image"`
	Amount       string `json:"amount"`
	FeeKind      string `json:"feeKind"`
	Fee          string `json:"fee"`
	LegacyAnchor bool   `json:"legacyAnchor"`
	Save         bool   `json:"save"`
}

// ConvertResponse is the body returned by POST /api/convert.
type ConvertResponse struct {
	Payload  string  `json:"payload"`
	Total    float64 `json:"total"`
	Merchant string  `json:"merchant,omitempty"`
	QR       string  `json:"qr"`
	ID       string  `json:"id,omitempty"`
}

func (s *server) convert(req ConvertRequest) (*ConvertResponse, error) {
	source, err := resolvePayload(req.Input, req.Image)
	if err != nil {
		return nil, err
	}

	fee, err := s.fee(req)
	if err != nil {
		return nil, err
	}

	anchor := s.cfg.AnchorMode()
	if req.LegacyAnchor {
		anchor = qris.AnchorSubstring
	}

	payload, err := qris.ConvertWithOptions(source, req.Amount, fee, qris.Options{Anchor: anchor})
	if err != nil {
		return nil, err
	}

	resp := &ConvertResponse{Payload: payload}
	if total, err := qris.Total(req.Amount, fee); err == nil {
		resp.Total = total
	}
	if p, err := qris.Decode(payload); err == nil {
		resp.Merchant = p.MerchantName()
	}

	size := s.cfg.QR.Size
	if size == 0 {
		size = qr.DefaultSize
	}
	png, err := qr.PNG(payload, size)
	if err != nil {
		return nil, err
	}
	resp.QR = format.EncodeDataURL("image/png", png)

	log.Printf("[WEB] Converted amount=%s fee=%s anchor=%s", req.Amount, fee, anchor)

	if req.Save {
		resp.ID = s.save(resp, req.Amount, fee, source)
	}
	return resp, nil
}

func (s *server) fee(req ConvertRequest) (qris.Fee, error) {
	if req.FeeKind == "" {
		return s.cfg.DefaultFee()
	}
	return qris.NewFee(req.FeeKind, req.Fee)
}

// save records a conversion in the history store and returns its ID, or ""
// when history is disabled or the write fails.
func (s *server) save(resp *ConvertResponse, amount string, fee qris.Fee, source string) string {
	if s.history == nil || !s.cfg.History.Enabled {
		log.Printf("[WEB] History disabled, not saving")
		return ""
	}
	e, err := s.history.Add(history.Entry{
		Merchant: resp.Merchant,
		Amount:   amount,
		FeeKind:  string(fee.Kind),
		Fee:      fee.Amount,
		Total:    resp.Total,
		Payload:  resp.Payload,
		Source:   source,
	})
	if err != nil {
		log.Printf("[WEB] Saving history failed: %v", err)
		return ""
	}
	return e.ID
}
