// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dai-tui/internal/ui/components"
	"github.com/jeranaias/dai-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the screen. An open popup replaces everything else.
func (m Model) View() string {
	if m.popup.Visible() {
		return m.popup.View(m.theme, m.width, m.height)
	}

	sections := []string{
		m.header.View(),
		m.viewport.View(),
		m.renderStatus(),
	}
	if chip := components.AttachmentChip(m.theme, m.attachment, m.width); chip != "" {
		sections = append(sections, chip)
	}
	sections = append(sections, m.renderInput(), m.renderHelpBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus() string {
	switch {
	case m.thinking.IsActive():
		return m.thinking.View()
	case m.status == "":
		return ""
	case m.statusErr:
		return m.theme.RenderError(m.status)
	default:
		return m.theme.RenderInfo(m.status)
	}
}

func (m Model) renderInput() string {
	box := m.theme.InputContainer.Width(m.width)
	if m.conv.Busy() {
		return box.Render(m.theme.InputDisabled.Render("Waiting for D'Ai..."))
	}
	return box.Render(m.input.View())
}

func (m Model) renderHelpBar() string {
	var items []string
	for _, b := range m.keys.ShortHelp() {
		items = append(items, m.renderBinding(b))
	}
	return m.theme.StatusBar.Render(strings.Join(items, m.theme.ShortcutDesc.Render("  ")))
}

func (m Model) renderBinding(b key.Binding) string {
	h := b.Help()
	return m.theme.ShortcutKey.Render(h.Key) + " " + m.theme.ShortcutDesc.Render(h.Desc)
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the input to its content and gives the rest to the viewport.
func (m *Model) layout() {
	rows := m.input.LineCount()
	if rows < 1 {
		rows = 1
	}
	if rows > maxInputRows {
		rows = maxInputRows
	}
	m.input.SetHeight(rows)

	// header + status + input border + help bar
	reserved := 1 + 1 + 1 + 1 + rows
	if m.attachment != nil {
		reserved++
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-reserved, 1)
}

// refresh re-renders the history into the viewport. Rendered messages are
// cached by ID until the width or theme changes.
func (m *Model) refresh(gotoBottom bool) {
	renderKey := m.theme.Name() + ":" + strconv.Itoa(m.width)
	if renderKey != m.renderKey {
		m.rendered = make(map[string]string)
		m.renderKey = renderKey
	}

	if m.showHelp {
		m.viewport.SetContent(m.helpText())
		m.viewport.GotoTop()
		return
	}

	var blocks []string
	for _, msg := range m.conv.Messages() {
		out, ok := m.rendered[msg.ID]
		if !ok {
			out = m.renderer.Render(msg)
			m.rendered[msg.ID] = out
		}
		blocks = append(blocks, out)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// helpText lists commands and keys for the /help panel.
func (m Model) helpText() string {
	var sb strings.Builder
	sb.WriteString(m.theme.HeaderTitle.Render("Commands"))
	sb.WriteString("\n")
	for _, c := range commandHelp {
		sb.WriteString("  ")
		sb.WriteString(m.theme.ShortcutKey.Render(util.PadRight(c.usage, 26)))
		sb.WriteString(m.theme.ShortcutDesc.Render(c.desc))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.HeaderTitle.Render("Keys"))
	sb.WriteString("\n")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			sb.WriteString("  ")
			sb.WriteString(m.theme.ShortcutKey.Render(util.PadRight(h.Key, 26)))
			sb.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("esc closes this panel"))
	return sb.String()
}
