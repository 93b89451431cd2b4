// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ASCII frames render the same on every terminal font.
var thinkingFrames = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// ThinkingIndicator is the spinner row shown while a request is outstanding.
type ThinkingIndicator struct {
	spinner   spinner.Model
	theme     *styles.Theme
	message   string
	startTime time.Time
	active    bool
}

// NewThinkingIndicator creates an inactive indicator.
func NewThinkingIndicator(theme *styles.Theme) ThinkingIndicator {
	s := spinner.New()
	s.Spinner = thinkingFrames
	return ThinkingIndicator{
		spinner: s,
		theme:   theme,
		message: "Thinking",
	}
}

// Start activates the indicator with message and returns the first tick.
func (t *ThinkingIndicator) Start(message string) tea.Cmd {
	if message != "" {
		t.message = message
	}
	wasActive := t.active
	t.active = true
	t.startTime = time.Now()
	if wasActive {
		// A tick loop is already running.
		return nil
	}
	return t.spinner.Tick
}

// SetMessage changes the text without restarting the timer.
func (t *ThinkingIndicator) SetMessage(message string) {
	t.message = message
}

// Message returns the current text.
func (t ThinkingIndicator) Message() string { return t.message }

// Stop deactivates the indicator.
func (t *ThinkingIndicator) Stop() {
	t.active = false
}

// IsActive reports whether the indicator is running.
func (t ThinkingIndicator) IsActive() bool { return t.active }

// Elapsed returns the time since Start.
func (t ThinkingIndicator) Elapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update advances the animation. Ticks arriving after Stop end the loop.
func (t ThinkingIndicator) Update(msg tea.Msg) (ThinkingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders "<frame> Thinking... (3s)", or "" when inactive.
func (t ThinkingIndicator) View() string {
	if !t.active {
		return ""
	}
	out := t.theme.Spinner.Render(t.spinner.View()) + " " +
		t.theme.ThinkingText.Render(t.message+"...")
	if !t.startTime.IsZero() {
		out += t.theme.ShortcutDesc.Render(" (" + formatElapsed(t.Elapsed()) + ")")
	}
	return out
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
