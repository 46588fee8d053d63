// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the light and dark palettes for the rigchat terminal
interface.

Colors are declared once as lipgloss.AdaptiveColor pairs (colors.go). A Theme
resolves every pair to its Light or Dark side according to the theme setting
rather than the terminal background, so the user's choice always wins.

# Usage

	theme := styles.NewTheme(settings.Theme)
	fmt.Println(theme.UserLabel.Render("You"))

The color profile is taken from the environment with termenv, which honours
NO_COLOR and CLICOLOR_FORCE.
*/
package styles
