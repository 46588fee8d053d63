// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings when another process rewrites the file.
// Subscribers are notified of each effective change. An invalid external
// edit is logged and ignored, leaving the current settings in force.
//
// Watch returns once the watcher is running; it stops when ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: an atomic save replaces the file by rename, which
	// would drop a watch placed on the file itself.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.relevant(ev) {
					continue
				}
				s.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("settings watcher error", "err", err)
			}
		}
	}()
	return nil
}

func (s *Store) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	return name == filepath.Clean(s.path) || name == filepath.Clean(s.tomlPath())
}

func (s *Store) reload() {
	loaded, err := s.readFile()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring invalid settings edit", "path", s.path, "err", err)
		}
		return
	}

	s.mu.Lock()
	if loaded == s.current {
		s.mu.Unlock()
		return
	}
	s.current = loaded
	s.mu.Unlock()

	log.Info("settings reloaded", "path", s.path)
	s.notify(loaded)
}
