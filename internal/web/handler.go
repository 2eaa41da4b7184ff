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

// Package web serves the qris-dev HTTP API and browser UI.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/miezlearning/qris-dev/internal/config"
	"github.com/miezlearning/qris-dev/internal/history"
	"github.com/miezlearning/qris-dev/internal/qris"
)

const maxRequestBody = 1 << 20 // 1MB

// Options configures the web server.
type Options struct {
	// Prefill is served via GET /api/prefill when non-empty.
	Prefill string
	// Config supplies default fee, anchor and QR size. Nil means defaults.
	Config *config.Config
	// History stores saved conversions. Nil disables saving.
	History *history.Store
}

// ListenAndServe starts the HTTP server on the given port.
func ListenAndServe(port int, opts Options) error {
	mux := NewMux(opts)
	log.Printf("[WEB] Listening on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

type server struct {
	prefill string
	cfg     *config.Config
	history *history.Store
}

// NewMux creates the HTTP handler with API and static file routes.
func NewMux(opts Options) http.Handler {
	s := &server{
		prefill: opts.Prefill,
		cfg:     opts.Config,
		history: opts.History,
	}
	if s.cfg == nil {
		s.cfg = config.DefaultConfig()
	}

	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("POST /api/decode", s.handleDecode)
	mux.HandleFunc("POST /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/history", s.handleListHistory)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleDeleteHistory)
	mux.HandleFunc("GET /api/prefill", s.handlePrefill)

	// Static files
	sub, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

func (s *server) handlePrefill(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"input": s.prefill})
}

type decodeRequest struct {
	Input string `json:"input"`
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	result, err := Decode(req.Input)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Input == "" && req.Image == "" {
		writeError(w, http.StatusBadRequest, "input or image is required")
		return
	}

	result, err := s.convert(req)
	if err != nil {
		log.Printf("[WEB] convert failed: %v", err)
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []history.Entry{})
		return
	}
	entries, err := s.history.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	id := r.PathValue("id")
	if err := s.history.Remove(id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[WEB] Deleted history entry %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("[WEB] Encoding response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError reports a failed decode or conversion as 422 together
// with the machine-readable error kind.
func writeEngineError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": err.Error(),
		"kind":  qris.Kind(err),
	})
}
