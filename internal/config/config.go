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

// Package config loads qris-dev defaults from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/miezlearning/qris-dev/internal/qris"
)

const (
	dirName  = ".qris-dev"
	fileName = "config.yaml"
)

// Config holds defaults that CLI flags and API requests may override.
type Config struct {
	Anchor  string        `mapstructure:"anchor" yaml:"anchor" json:"anchor"`
	Fee     FeeConfig     `mapstructure:"fee" yaml:"fee" json:"fee"`
	QR      QRConfig      `mapstructure:"qr" yaml:"qr" json:"qr"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve" json:"serve"`
	History HistoryConfig `mapstructure:"history" yaml:"history" json:"history"`
}

type FeeConfig struct {
	Kind   string `mapstructure:"kind" yaml:"kind" json:"kind"`
	Amount string `mapstructure:"amount" yaml:"amount" json:"amount"`
}

type QRConfig struct {
	Size int `mapstructure:"size" yaml:"size" json:"size"`
}

type ServeConfig struct {
	Port int `mapstructure:"port" yaml:"port" json:"port"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir" json:"dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Anchor: string(qris.AnchorStructural),
		Fee: FeeConfig{
			Kind: string(qris.FeeNone),
		},
		QR: QRConfig{
			Size: 400,
		},
		Serve: ServeConfig{
			Port: 8080,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Load merges the global config (~/.qris-dev/config.yaml) and the project
// config (./.qris-dev/config.yaml) over the defaults. An explicit path
// replaces both lookups. Missing files are not an error.
func Load(explicit string) (*Config, error) {
	cfg := DefaultConfig()

	if explicit != "" {
		if err := loadFile(explicit, cfg); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", explicit, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{GlobalPath(), ProjectPath()} {
		if path == "" {
			continue
		}
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Validate checks values that would otherwise fail late, in the middle of a
// conversion.
func (c *Config) Validate() error {
	if _, err := qris.ParseAnchorMode(c.Anchor); err != nil {
		return err
	}
	if _, err := qris.ParseFeeKind(c.Fee.Kind); err != nil {
		return fmt.Errorf("fee.kind: %w", err)
	}
	if c.QR.Size != 0 && c.QR.Size < 21 {
		return fmt.Errorf("qr.size must be at least 21, got %d", c.QR.Size)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	return nil
}

// AnchorMode returns the configured anchor mode. Validate has already
// rejected unknown values.
func (c *Config) AnchorMode() qris.AnchorMode {
	mode, _ := qris.ParseAnchorMode(c.Anchor)
	return mode
}

// DefaultFee returns the configured default fee.
func (c *Config) DefaultFee() (qris.Fee, error) {
	return qris.NewFee(c.Fee.Kind, c.Fee.Amount)
}

// HistoryDir returns history.dir with a leading ~ expanded, or the global
// qris-dev directory when unset.
func (c *Config) HistoryDir() string {
	dir := c.History.Dir
	switch {
	case dir == "":
		return Dir()
	case dir == "~" || strings.HasPrefix(dir, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return dir
		}
		return filepath.Join(home, strings.TrimPrefix(dir[1:], "/"))
	}
	return dir
}

// Dir returns the global qris-dev directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// GlobalPath returns the path of the global config file.
func GlobalPath() string {
	return filepath.Join(Dir(), fileName)
}

// ProjectPath returns the path of the project config file.
func ProjectPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, dirName, fileName)
}

// WriteDefault writes a commented default configuration to path.
func WriteDefault(path string) error {
	content := `# qris-dev configuration

# How the initiation flag and the country code field are located:
#   structural - parse the payload as TLV records (default)
#   substring  - first literal match, byte-compatible with older tooling
anchor: structural

# Fee applied when --fee-kind is not given
fee:
  kind: none      # none, fixed (rupiah) or percent
  # amount: "1000"

qr:
  size: 400       # PNG width and height in pixels

serve:
  port: 8080

history:
  enabled: true
  # dir: ~/.qris-dev
`
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
