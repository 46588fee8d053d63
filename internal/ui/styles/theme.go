// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigchat/internal/config"
)

// Theme holds the styled components for one palette.
type Theme struct {
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// Messages
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	UserText       lipgloss.Style
	SystemText     lipgloss.Style
	Timestamp      lipgloss.Style

	// Input
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style
	StatusModel   lipgloss.Style
	StatusNotice  lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	Spinner lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme builds the theme named by a settings value. Anything other than
// "dark" yields the light theme.
func NewTheme(name string) *Theme {
	dark := name == config.ThemeDark
	t := &Theme{
		Name:         config.ThemeLight,
		IsDark:       dark,
		ColorProfile: ColorProfile(),
	}
	if dark {
		t.Name = config.ThemeDark
	}
	t.initStyles()
	return t
}

// Toggle returns the name of the other theme.
func Toggle(name string) string {
	if name == config.ThemeDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}

// GlamourStyle names the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ColorProfile reports the color profile of stdout as configured by the
// environment. NO_COLOR forces Ascii.
func ColorProfile() termenv.Profile {
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}

func (t *Theme) c(ac lipgloss.AdaptiveColor) lipgloss.Color {
	return resolve(ac, t.IsDark)
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(t.c(SurfaceDim)).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(t.c(Purple)).
		Bold(true)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(t.c(Cyan)).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(t.c(Purple)).
		Bold(true)
	t.SystemLabel = lipgloss.NewStyle().
		Foreground(t.c(Amber)).
		Bold(true)
	t.UserText = lipgloss.NewStyle().
		Foreground(t.c(UserFg))
	t.SystemText = lipgloss.NewStyle().
		Foreground(t.c(SystemFg)).
		Italic(true)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.c(Overlay)).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(t.c(Cyan)).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.c(TextSecondary)).
		Background(t.c(SurfaceDim))
	t.StatusOnline = lipgloss.NewStyle().
		Foreground(t.c(Emerald)).
		Bold(true)
	t.StatusOffline = lipgloss.NewStyle().
		Foreground(t.c(Rose)).
		Bold(true)
	t.StatusModel = lipgloss.NewStyle().
		Foreground(t.c(Purple))
	t.StatusNotice = lipgloss.NewStyle().
		Foreground(t.c(Amber))
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(t.c(Cyan)).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))

	t.Spinner = lipgloss.NewStyle().
		Foreground(t.c(Purple))
	t.Muted = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))
}

// RoleLabel returns the styled label for a message role name.
func (t *Theme) RoleLabel(role, text string) string {
	switch role {
	case "user":
		return t.UserLabel.Render(text)
	case "assistant":
		return t.AssistantLabel.Render(text)
	default:
		return t.SystemLabel.Render(text)
	}
}

// Connection renders the connection indicator.
func (t *Theme) Connection(online bool) string {
	if online {
		return t.StatusOnline.Render(StatusIndicators.Success + " connected")
	}
	return t.StatusOffline.Render(StatusIndicators.Error + " offline")
}
