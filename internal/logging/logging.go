// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the log file written inside Options.Dir when ToFile is set.
const FileName = "rigchat.log"

// Prefix tags every line written by the default logger.
const Prefix = "rigchat"

// Options controls where and how verbosely the default logger writes.
type Options struct {
	// Debug lowers the level from info to debug.
	Debug bool

	// ToFile sends output to Dir/rigchat.log instead of Stderr.
	ToFile bool

	// Dir holds the log file. Required when ToFile is set.
	Dir string

	// Stderr is the console destination. Defaults to os.Stderr.
	Stderr io.Writer
}

// Setup installs the default logger and returns a cleanup func that closes
// the log file, if one was opened. The cleanup func is never nil.
func Setup(opts Options) (func(), error) {
	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}

	var w io.Writer = opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	cleanup := func() {}

	if opts.ToFile {
		f, err := openLogFile(opts.Dir)
		if err != nil {
			return cleanup, err
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}

	log.SetDefault(New(w, level))
	return cleanup, nil
}

// New builds a logger with the rigchat prefix and timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// Path returns the log file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory not set")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(Path(dir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
