// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/model"
)

// =============================================================================
// CONTEXT WINDOW
// =============================================================================

// buildPrompt renders the prompt for a new user turn. Prior user and
// assistant messages are included newest first until either limit would be
// exceeded; system notices never are. With no prior turns the prompt is
// the user text alone.
func buildPrompt(prior []model.Message, text string, limits config.ContextLimits) string {
	turns := contextWindow(prior, limits)
	if len(turns) == 0 {
		return text
	}

	var sb strings.Builder
	for _, line := range turns {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString("User: ")
	sb.WriteString(text)
	sb.WriteString("\nAssistant:")
	return sb.String()
}

// contextWindow returns the rendered prior turns to keep, oldest first.
func contextWindow(prior []model.Message, limits config.ContextLimits) []string {
	var kept []string
	chars := 0

	for i := len(prior) - 1; i >= 0; i-- {
		msg := prior[i]
		var line string
		switch msg.Role {
		case model.RoleUser:
			line = "User: " + msg.Content
		case model.RoleAssistant:
			line = "Assistant: " + msg.Content
		default:
			continue
		}

		if limits.MaxMessages > 0 && len(kept) >= limits.MaxMessages {
			break
		}
		n := utf8.RuneCountInString(line) + 1
		if limits.MaxChars > 0 && chars+n > limits.MaxChars {
			break
		}
		chars += n
		kept = append(kept, line)
	}

	// Reverse into chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
