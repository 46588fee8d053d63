// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to files.
//
// # Supported Formats
//
//   - Text: the plain transcript, one "<role>: <content>" line per message
//   - Markdown: human-readable with metadata
//   - JSON: machine-readable, message IDs and timestamps included
//
// # Usage
//
//	conv := export.NewConversation(id, "mistral", history)
//	err := export.ToFile(conv, export.ForPath(path), path)
package export
