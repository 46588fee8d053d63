// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view for rigchat.

The view is deliberately thin. All conversation state lives in a
chat.Session from the internal/chat package; the Bubble Tea model here keeps
only the input line, the layout and a few status fields, and redraws from
Session.Snapshot whenever the session reports a change.

# Event flow

Session listeners must not block, because a resolution dispatched onto the
event loop runs listeners from inside Update. The model subscribes with a
one-slot signal channel and a command that waits on it:

	session change -> signal channel -> changedMsg -> Snapshot -> viewport

Request resolutions are marshalled onto the event loop through a Dispatcher,
so history mutations and redraws never interleave.

# Keys

	Enter   send message
	Esc     cancel generation
	Ctrl+L  clear conversation
	Ctrl+N  new chat
	Ctrl+S  save transcript
	Ctrl+T  toggle light/dark theme
	Ctrl+C  quit
*/
package chat
