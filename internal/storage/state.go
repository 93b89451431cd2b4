// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/util"
)

// State is the persisted UI state.
type State struct {
	Onboarding model.OnboardingState `json:"onboarding"`
	// Theme is the last theme chosen with the toggle, empty when never toggled.
	Theme string `json:"theme,omitempty"`
}

// StateStore reads and writes state.json.
type StateStore struct {
	path string
	mu   sync.Mutex
}

// NewStateStore returns a store backed by path. Nothing is touched until
// Load or Save.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the backing file.
func (s *StateStore) Path() string { return s.path }

// Load reads the state. A missing file is the zero State, not an error.
func (s *StateStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st State
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	return st, nil
}

// Save writes st atomically.
func (s *StateStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Reset removes the state file so the onboarding popups show again.
func (s *StateStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reset state: %w", err)
	}
	return nil
}
