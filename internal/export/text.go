// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/jeranaias/rigchat/internal/util"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter writes the plain transcript: one "<role>: <content>" line per
// message in chronological order, each ending in a newline. Line breaks
// inside a message are written as a literal \n so every message stays on
// one line.
type TextExporter struct{}

// NewTextExporter creates a new transcript exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export converts a conversation to the transcript format.
func (e *TextExporter) Export(conv *Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	var buf bytes.Buffer
	for _, msg := range conv.Messages {
		buf.WriteString(string(msg.Role))
		buf.WriteString(": ")
		buf.WriteString(util.SingleLine(msg.Content))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for transcripts.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for transcripts.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
