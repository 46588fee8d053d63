// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide structured logger.
//
// Every package logs through the charmbracelet/log default logger with
// key/value pairs. Setup picks the destination: stderr for plain commands,
// an append-only file under the settings directory while the full-screen
// interface owns the terminal.
package logging
