// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
	"github.com/jeranaias/dai-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: mode name on the left, model and hints on the right.
type Header struct {
	Mode      model.Mode
	ModelName string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header for the chat mode.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Mode:  model.ModeChat,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetMode updates the displayed mode and its model name.
func (h *Header) SetMode(mode model.Mode, modelName string) {
	h.Mode = mode
	h.ModelName = modelName
}

// View renders the header on a single line.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}

	titleStyle := h.theme.HeaderTitle
	if h.Mode == model.ModeStudio {
		titleStyle = h.theme.HeaderStudio
	}
	left := titleStyle.Render(h.Mode.DisplayName())

	var rightParts []string
	if h.ModelName != "" {
		rightParts = append(rightParts, h.ModelName)
	}
	rightParts = append(rightParts, h.theme.Name(), "ctrl+t mode", "/help")
	right := h.theme.HeaderHint.Render(strings.Join(rightParts, " | "))

	// Inner width excludes the header padding.
	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = h.theme.HeaderHint.Render(util.TruncateWidth(strings.Join(rightParts, " | "), max(inner-lipgloss.Width(left)-1, 0)))
		gap = inner - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
	}

	return h.theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
