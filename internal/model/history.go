// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// History is an ordered, append-only buffer of messages.
//
// History is not safe for concurrent use; the owner serializes access.
type History struct {
	messages []Message
	last     time.Time
	now      func() time.Time
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// Append adds a message with the given role and content and returns a copy
// of the stored value. Timestamps never go backwards within one history,
// even if the wall clock does.
func (h *History) Append(role Role, content string) Message {
	ts := h.clock()
	if ts.Before(h.last) {
		ts = h.last
	}
	h.last = ts

	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: ts,
	}
	h.messages = append(h.messages, msg)
	return msg
}

// Len returns the number of messages.
func (h *History) Len() int {
	return len(h.messages)
}

// Snapshot returns a copy of all messages in order.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Last returns the most recent message, if any.
func (h *History) Last() (Message, bool) {
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Reset removes all messages. The timestamp floor is kept so a cleared
// session still never reports a time earlier than what it already showed.
func (h *History) Reset() {
	h.messages = nil
}

func (h *History) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}
