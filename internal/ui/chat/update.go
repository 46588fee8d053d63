// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	session "github.com/jeranaias/rigchat/internal/chat"
	"github.com/jeranaias/rigchat/internal/ui/styles"
)

// Status notices.
const (
	NoticeBusy    = "Still waiting for the previous reply. Press Esc to cancel it."
	NoticeClosed  = "This session is closed."
	NoticeCleared = "Conversation cleared."
	NoticeNewChat = "Started a new chat."
)

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resolveMsg:
		msg.fn()
		return m, nil

	case changedMsg:
		wasAwaiting := m.awaiting
		m.refresh()
		cmds := []tea.Cmd{m.waitForChange()}
		if m.awaiting && !wasAwaiting {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case probeMsg:
		if m.probed && m.online != msg.online {
			log.Info("connection changed", "online", msg.online)
		}
		m.online = msg.online
		m.probed = true
		return m, probeTick()

	case probeTickMsg:
		if m.probe == nil {
			return m, nil
		}
		return m, m.probeCmd()

	case spinner.TickMsg:
		if !m.awaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.input.Width = max(msg.Width-8, 10)
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-headerHeight-inputHeight-statusHeight, 3)
	m.ready = true
	m.rebuildRenderer()
	m.updateViewport()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Cancel):
		if m.session.Cancel() {
			m.notice = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.notice = NoticeCleared
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.session.NewChat()
		m.notice = NoticeNewChat
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line. The line is kept when the session refuses it.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	err := m.session.Send(text)
	switch {
	case errors.Is(err, session.ErrBusy):
		m.notice = NoticeBusy
		return m, nil
	case errors.Is(err, session.ErrClosed):
		m.notice = NoticeClosed
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}
	m.input.Reset()
	m.notice = ""
	return m, nil
}

func (m *Model) save() {
	path := session.TranscriptPath(m.settings.Current().SavePath, "")
	if err := m.session.Save(path); err != nil {
		m.notice = fmt.Sprintf("Save failed: %v", err)
		return
	}
	m.notice = "Saved to " + path
}

func (m *Model) toggleTheme() {
	next := styles.Toggle(m.theme.Name)
	if m.saveTheme != nil {
		if err := m.saveTheme(next); err != nil {
			log.Warn("theme not saved", "theme", next, "err", err)
			m.notice = fmt.Sprintf("Theme not saved: %v", err)
		}
	}
	m.applyTheme(next)
	m.updateViewport()
}
