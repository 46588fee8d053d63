// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigchat/internal/config"
)

func TestNewTheme(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantDark bool
		glamour  string
	}{
		{config.ThemeLight, config.ThemeLight, false, "light"},
		{config.ThemeDark, config.ThemeDark, true, "dark"},
		{"", config.ThemeLight, false, "light"},
		{"solarized", config.ThemeLight, false, "light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewTheme(tt.name)
			if th.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", th.Name, tt.wantName)
			}
			if th.IsDark != tt.wantDark {
				t.Errorf("IsDark = %v, want %v", th.IsDark, tt.wantDark)
			}
			if got := th.GlamourStyle(); got != tt.glamour {
				t.Errorf("GlamourStyle() = %q, want %q", got, tt.glamour)
			}
		})
	}
}

func TestThemeResolvesPalette(t *testing.T) {
	light := NewTheme(config.ThemeLight)
	dark := NewTheme(config.ThemeDark)

	if got := light.UserLabel.GetForeground(); got != lipgloss.Color(Cyan.Light) {
		t.Errorf("light user label = %v, want %v", got, Cyan.Light)
	}
	if got := dark.UserLabel.GetForeground(); got != lipgloss.Color(Cyan.Dark) {
		t.Errorf("dark user label = %v, want %v", got, Cyan.Dark)
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle(config.ThemeLight); got != config.ThemeDark {
		t.Errorf("Toggle(light) = %q", got)
	}
	if got := Toggle(config.ThemeDark); got != config.ThemeLight {
		t.Errorf("Toggle(dark) = %q", got)
	}
	if got := Toggle(""); got != config.ThemeDark {
		t.Errorf("Toggle(\"\") = %q", got)
	}
}

func TestRoleLabel(t *testing.T) {
	th := NewTheme(config.ThemeLight)
	for _, role := range []string{"user", "assistant", "system"} {
		if out := th.RoleLabel(role, "label"); !strings.Contains(out, "label") {
			t.Errorf("RoleLabel(%q) = %q, missing text", role, out)
		}
	}
}

func TestConnection(t *testing.T) {
	th := NewTheme(config.ThemeDark)
	if out := th.Connection(true); !strings.Contains(out, StatusIndicators.Success) {
		t.Errorf("online indicator missing: %q", out)
	}
	if out := th.Connection(false); !strings.Contains(out, StatusIndicators.Error) {
		t.Errorf("offline indicator missing: %q", out)
	}
}
