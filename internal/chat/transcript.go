// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigchat/internal/export"
)

// DefaultTranscriptName is the file written when no name is given.
const DefaultTranscriptName = "chat_history.txt"

// IOError reports a failed save. The history is never affected.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// TranscriptPath resolves where a transcript is written. An empty name
// means DefaultTranscriptName; a bare name is cleaned and placed inside
// savePath, and gets a .txt extension if it has none. Names containing a
// directory are used as given.
func TranscriptPath(savePath, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return filepath.Join(savePath, DefaultTranscriptName)
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return filepath.Clean(name)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = ".txt"
	}
	return filepath.Join(savePath, export.SanitizeFilename(base)+ext)
}

// conversation snapshots the session for an exporter.
func (s *Session) conversation() *export.Conversation {
	settings := s.settings.Current()
	s.mu.Lock()
	defer s.mu.Unlock()
	return export.NewConversation(s.id, s.modelLocked(settings), s.history.Snapshot())
}

// Save writes the plain transcript to path, replacing any existing file.
func (s *Session) Save(path string) error {
	return s.writeWith(export.NewTextExporter(), path)
}

// Export writes the conversation in the format implied by the extension of
// path (see export.ForPath).
func (s *Session) Export(path string) error {
	return s.writeWith(export.ForPath(path), path)
}

func (s *Session) writeWith(exporter export.Exporter, path string) error {
	conv := s.conversation()
	if err := export.ToFile(conv, exporter, path); err != nil {
		log.Error("save failed", "path", path, "err", err)
		return &IOError{Path: path, Err: err}
	}
	log.Info("conversation saved", "path", path, "messages", len(conv.Messages), "format", exporter.FileExtension())
	return nil
}

// SaveAndClear saves the transcript and, only if that succeeded, clears
// the history.
func (s *Session) SaveAndClear(path string) error {
	if err := s.Save(path); err != nil {
		return err
	}
	s.Clear()
	return nil
}
