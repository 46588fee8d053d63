// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Output styling for the rigchat commands and the line prompt.
//
// Colors come from the shared palette in ui/styles so the line prompt and
// the full-screen view read the same. Plain text is used when stdout is not
// a terminal or NO_COLOR is set.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigchat/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// labelWidth is the column where values start in key/value listings.
const labelWidth = 20

var (
	// Report layout (status, settings, models).
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple).MarginBottom(1)
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary).MarginTop(1)
	LabelStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	ValueStyle   = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	DimStyle     = lipgloss.NewStyle().Foreground(styles.TextMuted)

	// Outcomes.
	SuccessStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Emerald)
	ErrorStyle     = lipgloss.NewStyle().Bold(true).Foreground(styles.Rose)
	HighlightStyle = lipgloss.NewStyle().Foreground(styles.Cyan)

	// Transcript lines in the line prompt. Assistant replies go through
	// the markdown renderer instead.
	UserRoleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.UserFg)
	NoticeStyle   = lipgloss.NewStyle().Foreground(styles.Amber)
)

// RenderStatus renders the connection or file check marker.
func RenderStatus(ok bool) string {
	if ok {
		return SuccessStyle.Render(styles.StatusIndicators.Success)
	}
	return ErrorStyle.Render(styles.StatusIndicators.Error)
}

// RenderLabel pads label to labelWidth columns, or to width when given.
func RenderLabel(label string, width ...int) string {
	w := labelWidth
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return LabelStyle.Width(w).Render(label)
}

// rule renders a horizontal line closing a report.
func rule(width int) string {
	return DimStyle.Render(strings.Repeat("-", width))
}
