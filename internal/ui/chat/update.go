// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dai-tui/internal/conversation"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case conversation.PrimaryReplyMsg, conversation.ImageReplyMsg, conversation.RequestFailedMsg:
		return m.handleResult(msg)

	case AttachmentLoadedMsg:
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		if !m.conv.Mode().AllowsAttachments() {
			// Mode changed while the file was loading.
			m.setError(errRequiresStudio)
			return m, nil
		}
		m.attachment = msg.File
		m.setStatus("Attached " + msg.File.Name)
		m.layout()
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("export failed: %w", msg.Err))
		} else {
			m.setStatus("Exported to " + msg.Path)
		}
		return m, nil

	case StateSavedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("STATE_SAVE_FAILED")
		}
		return m, nil
	}

	// Spinner ticks and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.thinking, cmd = m.thinking.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleResult feeds a request result to the orchestrator.
func (m Model) handleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	next := m.conv.Update(msg)
	if m.conv.Busy() {
		m.thinking.SetMessage(m.thinkingMessage())
	} else {
		m.thinking.Stop()
	}
	if err := m.conv.Err(); err != nil {
		m.setError(err)
	}
	m.refresh(true)
	return m, next
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.renderer.SetWidth(msg.Width)
	m.input.SetWidth(max(msg.Width-4, 10))
	m.layout()
	m.refresh(false)
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.popup.Visible() {
		return m.handlePopupKey(msg)
	}

	if m.showHelp && key.Matches(msg, m.keys.Dismiss) {
		m.showHelp = false
		m.refresh(false)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Clear):
		m.clearConversation()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		cmd := m.switchMode(m.conv.Mode().Toggle(), true)
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		m.copyLastReply()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.clearStatus()
		m.conv.DismissError()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	// Input is disabled while a request is outstanding.
	if m.conv.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.layout()
	return m, cmd
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.popup.Kind {
	case components.PopupIntro:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.popup = components.Popup{}
			m.onboarding = m.onboarding.TryStudio()
			m.switchMode(model.ModeStudio, false)
			return m, m.saveState()
		case key.Matches(msg, m.keys.Dismiss):
			m.popup = components.Popup{}
			m.onboarding = m.onboarding.DismissIntro()
			return m, m.saveState()
		}

	case components.PopupStudioNotice:
		if key.Matches(msg, m.keys.Confirm, m.keys.Dismiss) {
			m.popup = components.Popup{}
		}
	}
	return m, nil
}

// submit sends the input, or runs it as a slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conv.Busy() {
		return m, nil
	}
	text := m.input.Value()
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		m.input.Reset()
		m.layout()
		return m.handleCommand(strings.TrimSpace(text))
	}

	send := m.conv.Submit(text, m.attachment)
	if send == nil {
		return m, nil
	}
	m.input.Reset()
	m.attachment = nil
	m.showHelp = false
	m.clearStatus()
	m.layout()
	m.refresh(true)
	return m, tea.Batch(send, m.thinking.Start(m.thinkingMessage()))
}
