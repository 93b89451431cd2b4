// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the dai TUI.
//
// All colors are lipgloss.AdaptiveColor values. Which half of each pair is
// used follows the Theme: "auto" asks the terminal (termenv), while "dark"
// and "light" force the choice so the theme toggle works on any terminal.
//
// # Usage
//
//	theme := styles.NewTheme(styles.ParsePreference(cfg.UI.Theme))
//	fmt.Println(theme.UserBubble.Render("hello"))
//	theme.Toggle() // dark <-> light
package styles
