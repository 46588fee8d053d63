// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// resolveMsg carries a session resolution onto the event loop.
type resolveMsg struct {
	fn func()
}

// Dispatcher runs session resolutions on the Bubble Tea event loop. Until a
// program is attached, resolutions run on the calling goroutine.
type Dispatcher struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach routes later resolutions through p.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.mu.Lock()
	d.program = p
	d.mu.Unlock()
}

// Dispatch is passed to chat.WithDispatcher.
func (d *Dispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	p := d.program
	d.mu.Unlock()
	if p == nil {
		fn()
		return
	}
	p.Send(resolveMsg{fn: fn})
}
