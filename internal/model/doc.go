// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Role: Message role enumeration (user, assistant, system)
//   - Message: Single message with ID, role, content and timestamp
//   - History: Ordered, append-only message buffer with monotonic timestamps
//
// # Usage
//
//	h := model.NewHistory()
//	h.Append(model.RoleUser, "Hello!")
//	for _, m := range h.Snapshot() {
//	    fmt.Printf("%s: %s\n", m.Role, m.Content)
//	}
//
// Snapshot returns copies; callers can never modify stored messages.
package model
