// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// POPUP OVERLAY
// =============================================================================

// PopupKind identifies which onboarding popup is showing.
type PopupKind int

const (
	PopupNone PopupKind = iota
	PopupIntro
	PopupStudioNotice
)

// Popup is a centred modal box with a title, body and key-labelled buttons.
type Popup struct {
	Kind    PopupKind
	Title   string
	Body    string
	Primary string
	// Secondary is empty for single-button popups.
	Secondary string
}

// IntroPopup advertises the image studio on first launch.
func IntroPopup() Popup {
	return Popup{
		Kind:      PopupIntro,
		Title:     "Discover D'Ai - Paint! 🍌",
		Body:      "Edit photos or create images from scratch with the new Nano Banana model.",
		Primary:   "enter: Try Now",
		Secondary: "esc: Later",
	}
}

// StudioNoticePopup is shown the first time the studio is entered.
func StudioNoticePopup() Popup {
	return Popup{
		Kind:    PopupStudioNotice,
		Title:   "D'Ai Paint Upgraded!",
		Body:    "Now powered by Google's Nano Banana 🍌 for incredible image editing and creation.",
		Primary: "enter: Try it!",
	}
}

// Visible reports whether the popup should be drawn.
func (p Popup) Visible() bool { return p.Kind != PopupNone }

// View renders the popup centred in a width x height area.
func (p Popup) View(theme *styles.Theme, width, height int) string {
	boxWidth := 48
	if width-4 < boxWidth {
		boxWidth = width - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}
	// Border plus horizontal padding.
	textWidth := boxWidth - 8

	var buttons []string
	if p.Secondary != "" {
		buttons = append(buttons, theme.PopupButtonAlt.Render(p.Secondary), "  ")
	}
	buttons = append(buttons, theme.PopupButton.Render(p.Primary))

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.PopupTitle.Render(wordwrap.String(p.Title, textWidth)),
		theme.PopupBody.Render(centerLines(wordwrap.String(p.Body, textWidth), textWidth)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
	)
	box := theme.PopupBox.Width(boxWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func centerLines(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
