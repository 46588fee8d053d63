// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus(true), "[OK]")
	assert.Contains(t, RenderStatus(false), "[X]")
	assert.NotContains(t, RenderStatus(false), "[OK]")
}

func TestRenderLabel(t *testing.T) {
	tests := []struct {
		name  string
		width []int
		want  int
	}{
		{"default", nil, labelWidth},
		{"explicit", []int{10}, 10},
		{"zero uses default", []int{0}, labelWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderLabel("Model", tt.width...)
			assert.Equal(t, tt.want, lipgloss.Width(got))
			assert.Contains(t, got, "Model")
		})
	}
}

func TestRule(t *testing.T) {
	assert.Equal(t, 40, lipgloss.Width(rule(40)))
}
