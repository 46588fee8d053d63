// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigchat/internal/util"
)

// =============================================================================
// PATH HELPERS
// =============================================================================

// Dir returns the rigchat configuration directory (~/.rigchat).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigchat"), nil
}

// DefaultPath returns the path of the settings file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// =============================================================================
// STORE
// =============================================================================

// Store persists Settings as JSON and holds the current snapshot.
// It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.RWMutex
	current Settings

	listenersMu sync.Mutex
	listeners   map[int]func(Settings)
	nextID      int
}

// NewStore creates a store backed by the file at path. The snapshot starts
// as Default() until Load is called.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		current:   Default(),
		listeners: make(map[int]func(Settings)),
	}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// tomlPath is the hand-written alternative read when the JSON file is absent.
func (s *Store) tomlPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".toml"
}

// Current returns the snapshot last loaded or saved.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load reads the settings file and makes it the current snapshot. It never
// fails: a missing, unreadable, malformed or invalid file yields Default().
func (s *Store) Load() Settings {
	loaded, err := s.readFile()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("settings load failed, using defaults", "path", s.path, "err", err)
		}
		loaded = Default()
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded
}

// Inspect reads and validates the settings file without changing the
// current snapshot. A missing file is reported as fs.ErrNotExist.
func (s *Store) Inspect() (Settings, error) {
	return s.readFile()
}

// readFile decodes the settings file on top of Default() and validates it.
// Keys missing from the file keep their default values.
func (s *Store) readFile() (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if _, statErr := os.Stat(s.tomlPath()); statErr != nil {
			return Settings{}, err
		}
		if _, err := toml.DecodeFile(s.tomlPath(), &cfg); err != nil {
			return Settings{}, fmt.Errorf("failed to decode TOML file: %w", err)
		}
		return cfg, Check(cfg)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to decode JSON file: %w", err)
	}
	if err := Check(cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Save validates candidate and, if valid, writes it and makes it current.
// On failure neither the file nor the snapshot change; validation problems
// are returned as a ValidationError.
// SECURITY: the file holds an API key, so it is written 0600.
func (s *Store) Save(candidate Settings) error {
	if err := Check(candidate); err != nil {
		return err
	}

	data, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	s.mu.Lock()
	s.current = candidate
	s.mu.Unlock()

	log.Debug("settings saved", "path", s.path)
	s.notify(candidate)
	return nil
}

// Reset writes the default settings.
func (s *Store) Reset() error {
	return s.Save(Default())
}

// =============================================================================
// CHANGE NOTIFICATION
// =============================================================================

// Subscribe registers fn to be called with the new settings after every
// successful Save or external reload. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Settings)) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// notify runs listeners outside every lock so they may call back into the store.
func (s *Store) notify(settings Settings) {
	s.listenersMu.Lock()
	fns := make([]func(Settings), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(settings)
	}
}
