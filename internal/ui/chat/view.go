// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigchat/internal/model"
	"github.com/jeranaias/rigchat/internal/util"
)

const (
	headerHeight = 1
	inputHeight  = 3
	statusHeight = 2
)

// View renders the chat screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatus(),
	)
}

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("rigchat")
	return m.theme.Header.Width(m.width).Render(title)
}

func (m *Model) renderInput() string {
	return m.theme.InputContainer.Width(max(m.width-2, 10)).Render(m.input.View())
}

// renderStatus draws the model, connection and theme line, then the key help.
func (m *Model) renderStatus() string {
	t := m.theme
	var parts []string

	if m.awaiting {
		parts = append(parts, m.spinner.View()+" "+t.Muted.Render("thinking"))
	}
	parts = append(parts, t.StatusModel.Render(util.TruncateWidth(m.session.Model(), 32)))
	if m.probe != nil {
		if m.probed {
			parts = append(parts, t.Connection(m.online))
		} else {
			parts = append(parts, t.Muted.Render("checking..."))
		}
	}
	parts = append(parts, t.Muted.Render(t.Name))
	if m.notice != "" {
		parts = append(parts, t.StatusNotice.Render(m.notice))
	}

	line := strings.Join(parts, t.Muted.Render(" | "))
	line = t.StatusBar.Width(m.width).Render(line)
	return line + "\n" + m.help.View(m.keys)
}

// updateViewport redraws the message list and keeps the newest message in
// view.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessages() string {
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message) string {
	t := m.theme
	header := t.RoleLabel(msg.Role.String(), msg.Role.DisplayName()) +
		" " + t.Timestamp.Render(msg.Timestamp.Format("15:04"))

	width := m.contentWidth()
	var body string
	switch {
	case msg.IsAssistant():
		body = m.renderMarkdown(msg)
	case msg.IsSystem():
		body = t.SystemText.Width(width).Render(msg.Content)
	default:
		body = t.UserText.Width(width).Render(msg.Content)
	}
	return header + "\n" + body + "\n"
}

// renderMarkdown renders assistant content, caching by message ID. Falls
// back to plain text when the renderer is unavailable or fails.
func (m *Model) renderMarkdown(msg model.Message) string {
	if out, ok := m.rendered[msg.ID]; ok {
		return out
	}
	if m.renderer == nil {
		return lipgloss.NewStyle().Width(m.contentWidth()).Render(msg.Content)
	}
	out, err := m.renderer.Render(msg.Content)
	if err != nil {
		return lipgloss.NewStyle().Width(m.contentWidth()).Render(msg.Content)
	}
	out = strings.Trim(out, "\n")
	m.rendered[msg.ID] = out
	return out
}
