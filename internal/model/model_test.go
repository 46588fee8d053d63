// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("Role(%q).DisplayName() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"user", RoleUser, true},
		{" Assistant ", RoleAssistant, true},
		{"SYSTEM", RoleSystem, true},
		{"tool", Role("tool"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	a := NewMessage(RoleUser, "hi")
	b := NewMessage(RoleUser, "hi")

	if a.ID == "" {
		t.Error("expected non-empty ID")
	}
	if a.ID == b.ID {
		t.Error("expected unique IDs")
	}
	if !a.IsUser() || a.IsAssistant() || a.IsSystem() {
		t.Errorf("role predicates wrong for %q", a.Role)
	}
}

func TestMessage_Preview(t *testing.T) {
	m := Message{Content: "line one\nline   two"}
	if got := m.Preview(100); got != "line one line two" {
		t.Errorf("Preview = %q", got)
	}
	if got := m.Preview(8); got != "line ..." {
		t.Errorf("Preview(8) = %q", got)
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistory_AppendOrder(t *testing.T) {
	h := NewHistory()
	h.Append(RoleUser, "one")
	h.Append(RoleAssistant, "two")
	h.Append(RoleSystem, "three")

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	snap := h.Snapshot()
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if snap[i].Content != w {
			t.Errorf("snap[%d].Content = %q, want %q", i, snap[i].Content, w)
		}
	}
	last, ok := h.Last()
	if !ok || last.Content != "three" {
		t.Errorf("Last() = %q, %v", last.Content, ok)
	}
}

func TestHistory_SnapshotIsCopy(t *testing.T) {
	h := NewHistory()
	h.Append(RoleUser, "original")

	snap := h.Snapshot()
	snap[0].Content = "mutated"

	if got := h.Snapshot()[0].Content; got != "original" {
		t.Errorf("stored content changed to %q", got)
	}
}

func TestHistory_MonotonicTimestamps(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(-time.Hour), base.Add(time.Second)}
	i := 0
	h := &History{now: func() time.Time {
		ts := times[i]
		i++
		return ts
	}}

	h.Append(RoleUser, "a")
	h.Append(RoleAssistant, "b")
	h.Append(RoleUser, "c")

	snap := h.Snapshot()
	for j := 1; j < len(snap); j++ {
		if snap[j].Timestamp.Before(snap[j-1].Timestamp) {
			t.Errorf("timestamp %d went backwards: %v < %v", j, snap[j].Timestamp, snap[j-1].Timestamp)
		}
	}
	if !snap[1].Timestamp.Equal(base) {
		t.Errorf("clamped timestamp = %v, want %v", snap[1].Timestamp, base)
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory()
	h.Append(RoleUser, "a")
	h.Reset()

	if h.Len() != 0 {
		t.Errorf("Len() after Reset = %d", h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("Last() should report empty history")
	}
}
