// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"slices"
	"sync"

	"github.com/jeranaias/rigchat/internal/model"
)

// =============================================================================
// CHANGE NOTIFICATION
// =============================================================================

// ChangeKind identifies what a transition did.
type ChangeKind int

const (
	// ChangeAppended means messages were added to the history.
	ChangeAppended ChangeKind = iota
	// ChangeCleared means the history was emptied (and possibly re-seeded).
	ChangeCleared
	// ChangeModel means the session model override changed.
	ChangeModel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAppended:
		return "appended"
	case ChangeCleared:
		return "cleared"
	case ChangeModel:
		return "model"
	default:
		return "unknown"
	}
}

// Change describes one session transition.
type Change struct {
	Kind ChangeKind
	// Appended holds the messages added by this transition, if any.
	Appended []model.Message
	// State is the session state right after the transition.
	State State
	// Epoch is the history generation right after the transition.
	Epoch uint64
}

// Listener receives changes. Listeners run without any session lock held
// and may call back into the session.
type Listener func(Change)

// Subscribe registers l for every later change. The returned function
// unsubscribes.
func (s *Session) Subscribe(l Listener) func() {
	return s.notifier.add(l)
}

// enqueueLocked records a change while s.mu is held, so queue order is
// transition order.
func (s *Session) enqueueLocked(kind ChangeKind, appended []model.Message) {
	s.notifier.push(Change{
		Kind:     kind,
		Appended: appended,
		State:    s.stateLocked(),
		Epoch:    s.epoch,
	})
}

// notifier delivers queued changes in order from whichever goroutine gets
// to flush first. A flush that finds delivery already running returns at
// once; the running loop picks up what it queued.
type notifier struct {
	mu         sync.Mutex
	queue      []Change
	delivering bool
	listeners  []subscription
	nextID     int
}

type subscription struct {
	id int
	fn Listener
}

func (n *notifier) add(l Listener) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, subscription{id: id, fn: l})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		n.listeners = slices.DeleteFunc(n.listeners, func(sub subscription) bool {
			return sub.id == id
		})
		n.mu.Unlock()
	}
}

func (n *notifier) push(c Change) {
	n.mu.Lock()
	n.queue = append(n.queue, c)
	n.mu.Unlock()
}

func (n *notifier) flush() {
	n.mu.Lock()
	if n.delivering {
		n.mu.Unlock()
		return
	}
	n.delivering = true

	// Listeners run without the lock; if one panics, switch delivery back
	// on so later changes still reach the others.
	finished := false
	defer func() {
		if !finished {
			n.mu.Lock()
			n.delivering = false
			n.mu.Unlock()
		}
	}()

	for len(n.queue) > 0 {
		c := n.queue[0]
		n.queue = n.queue[1:]
		subs := slices.Clone(n.listeners)
		n.mu.Unlock()

		for _, sub := range subs {
			sub.fn(c)
		}

		n.mu.Lock()
	}

	n.delivering = false
	finished = true
	n.mu.Unlock()
}
