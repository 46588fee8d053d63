// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation session behind every rigchat
// front end.
//
// A Session owns the ordered message history, sends each user turn to the
// inference server and appends the reply (or a categorized failure notice).
// At most one generation is in flight per session.
//
// # Key Types
//
//   - Session: history, request lifecycle, save and export
//   - Generator: anything that turns a GenerateRequest into text
//   - Change: notification delivered to subscribers after each transition
//   - State: Idle or Awaiting
//
// # Staleness
//
// Every request is tagged with the history epoch it was sent in. Clear,
// NewChat, Cancel and Close abandon the pending request; if its reply still
// arrives it is dropped, so a cleared history never receives an answer to a
// question it no longer contains.
//
// # Usage
//
//	s := chat.NewSession(store)
//	defer s.Close()
//	s.Subscribe(func(c chat.Change) { redraw(s.Snapshot()) })
//	if err := s.Send("Hello"); errors.Is(err, chat.ErrBusy) {
//	    // a reply is still pending
//	}
package chat
