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

// Package history keeps a local record of generated dynamic payloads.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no entry matches an ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one generated dynamic payload.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Merchant  string    `json:"merchant,omitempty"`
	Amount    string    `json:"amount"`
	FeeKind   string    `json:"fee_kind,omitempty"`
	Fee       string    `json:"fee,omitempty"`
	Total     float64   `json:"total"`
	Payload   string    `json:"payload"`
	Source    string    `json:"source,omitempty"`
}

// historyJSON is the on-disk format of history.json.
type historyJSON struct {
	Entries []Entry `json:"entries"`
}

// Store handles file-based persistence of history entries. It is safe for
// concurrent use within one process.
type Store struct {
	Dir string

	mu  sync.Mutex
	now func() time.Time
}

// DefaultDir returns the default history directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qris-dev"
	}
	return filepath.Join(home, ".qris-dev")
}

// NewStore creates a Store for the given directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{Dir: dir, now: time.Now}
}

func (s *Store) path() string {
	return filepath.Join(s.Dir, "history.json")
}

// Add assigns an ID and timestamp to e, persists it and returns it.
func (s *Store) Add(e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}

	e.ID = uuid.New().String()
	e.CreatedAt = s.now().UTC()
	entries = append(entries, e)

	if err := s.save(entries); err != nil {
		return Entry{}, err
	}
	log.Printf("[HISTORY] Saved %s (amount=%s)", e.ID, e.Amount)
	return e, nil
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Get returns the entry whose ID equals id or, failing that, the only entry
// whose ID starts with id.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	i, err := find(entries, id)
	if err != nil {
		return Entry{}, err
	}
	return entries[i], nil
}

// Remove deletes the entry matching id (see Get).
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	i, err := find(entries, id)
	if err != nil {
		return err
	}
	entries = append(entries[:i], entries[i+1:]...)
	return s.save(entries)
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	if err := s.save(nil); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func find(entries []Entry, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrNotFound
	}
	match := -1
	for i, e := range entries {
		if e.ID == id {
			return i, nil
		}
		if strings.HasPrefix(e.ID, id) {
			if match >= 0 {
				return -1, fmt.Errorf("ambiguous history ID prefix %q", id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return match, nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history.json: %w", err)
	}

	var hj historyJSON
	if err := json.Unmarshal(data, &hj); err != nil {
		return nil, fmt.Errorf("parsing history.json: %w", err)
	}
	return hj.Entries, nil
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(historyJSON{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history.json: %w", err)
	}

	return os.WriteFile(s.path(), data, 0600)
}
