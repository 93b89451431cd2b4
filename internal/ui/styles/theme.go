// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Preference is the configured theme choice.
type Preference string

const (
	PreferAuto  Preference = "auto"
	PreferDark  Preference = "dark"
	PreferLight Preference = "light"
)

// ParsePreference maps a config string to a Preference, defaulting to auto.
func ParsePreference(s string) Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case PreferDark:
		return PreferDark
	case PreferLight:
		return PreferLight
	default:
		return PreferAuto
	}
}

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStudio lipgloss.Style
	HeaderHint   lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	ModelBubble lipgloss.Style
	ErrorBubble lipgloss.Style
	RoleLabel   lipgloss.Style
	ImageRef    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style
	AttachmentChip lipgloss.Style

	// ==========================================================================
	// STATUS AND FEEDBACK STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style

	// ==========================================================================
	// POPUP STYLES
	// ==========================================================================

	PopupBox       lipgloss.Style
	PopupTitle     lipgloss.Style
	PopupBody      lipgloss.Style
	PopupButton    lipgloss.Style
	PopupButtonAlt lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	CodeCopyHint  lipgloss.Style
}

// NewTheme creates a theme. PreferAuto asks the terminal for its background.
func NewTheme(pref Preference) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}
	switch pref {
	case PreferDark:
		t.IsDark = true
	case PreferLight:
		t.IsDark = false
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	t.apply()
	return t
}

// Name returns "dark" or "light".
func (t *Theme) Name() string {
	if t.IsDark {
		return string(PreferDark)
	}
	return string(PreferLight)
}

// GlamourStyle is the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	return t.Name()
}

// ChromaStyle is the chroma style matching the theme.
func (t *Theme) ChromaStyle() string {
	if t.IsDark {
		return "catppuccin-mocha"
	}
	return "catppuccin-latte"
}

// Toggle flips between dark and light.
func (t *Theme) Toggle() {
	t.IsDark = !t.IsDark
	t.apply()
}

// apply pins lipgloss to the chosen background so every AdaptiveColor
// resolves the same way, then rebuilds the styles.
func (t *Theme) apply() {
	lipgloss.SetHasDarkBackground(t.IsDark)
	t.initStyles()
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderStudio = lipgloss.NewStyle().
		Bold(true).
		Foreground(Banana)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.ModelBubble = lipgloss.NewStyle().
		Foreground(ModelBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ModelBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1).
		MarginRight(4)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.ImageRef = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.AttachmentChip = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Banana).
		Padding(0, 1)

	// Status
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Cyan)

	// Popups
	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Banana).
		Padding(1, 3)

	t.PopupTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Banana).
		MarginBottom(1)

	t.PopupBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PopupButton = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Purple).
		Bold(true).
		Padding(0, 2)

	t.PopupButtonAlt = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Overlay).
		Padding(0, 2)

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.CodeCopyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// RenderError renders text with the error marker and color.
func (t *Theme) RenderError(message string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderSuccess renders text with the success marker and color.
func (t *Theme) RenderSuccess(message string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderInfo renders text with the info marker and color.
func (t *Theme) RenderInfo(message string) string {
	return t.InfoStyle.Render(StatusIndicators.Info + " " + message)
}
