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

// Package batch converts one static QRIS into many dynamic ones described by
// a YAML manifest.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miezlearning/qris-dev/internal/qris"
)

// Manifest describes a batch run.
type Manifest struct {
	// Source is the static payload. SourceImage is used when Source is empty.
	Source      string `yaml:"source"`
	SourceImage string `yaml:"source_image"`
	OutputDir   string `yaml:"output_dir"`
	QRSize      int    `yaml:"qr_size"`
	Anchor      string `yaml:"anchor"`
	Jobs        []Job  `yaml:"jobs"`

	// baseDir resolves relative paths; set by LoadManifest.
	baseDir string
}

// Job is one dynamic payload to produce.
type Job struct {
	Name    string `yaml:"name"`
	Amount  string `yaml:"amount"`
	FeeKind string `yaml:"fee_kind"`
	Fee     string `yaml:"fee"`
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.baseDir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest shape and fills in job names. Amounts and fees
// are left to the converter so that each job reports its own error.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Source) == "" && strings.TrimSpace(m.SourceImage) == "" {
		return fmt.Errorf("manifest needs source or source_image")
	}
	if len(m.Jobs) == 0 {
		return fmt.Errorf("manifest has no jobs")
	}
	if _, err := qris.ParseAnchorMode(m.Anchor); err != nil {
		return fmt.Errorf("manifest anchor: %w", err)
	}

	seen := make(map[string]int, len(m.Jobs))
	for i := range m.Jobs {
		j := &m.Jobs[i]
		if j.Name == "" {
			j.Name = "qris_" + j.Amount
		}
		j.Name = strings.Trim(unsafeName.ReplaceAllString(j.Name, "_"), "_")
		if j.Name == "" {
			j.Name = fmt.Sprintf("job_%d", i+1)
		}
		if prev, ok := seen[j.Name]; ok {
			return fmt.Errorf("jobs %d and %d share the name %q", prev+1, i+1, j.Name)
		}
		seen[j.Name] = i
	}
	return nil
}

func (m *Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}
