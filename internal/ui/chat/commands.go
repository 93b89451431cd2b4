// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dai-tui/internal/export"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/ui/components"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names and aliases to handlers.
var commandHandlers = map[string]CommandHandler{
	"help":   handleHelpCommand,
	"h":      handleHelpCommand,
	"?":      handleHelpCommand,
	"clear":  handleClearCommand,
	"c":      handleClearCommand,
	"mode":   handleModeCommand,
	"m":      handleModeCommand,
	"attach": handleAttachCommand,
	"a":      handleAttachCommand,
	"detach": handleDetachCommand,
	"theme":  handleThemeCommand,
	"copy":   handleCopyCommand,
	"export": handleExportCommand,
	"e":      handleExportCommand,
	"quit":   handleQuitCommand,
	"q":      handleQuitCommand,
	"exit":   handleQuitCommand,
}

type commandDoc struct {
	usage string
	desc  string
}

// commandHelp is the /help listing, in display order.
var commandHelp = []commandDoc{
	{"/help", "show this panel"},
	{"/clear", "start over in the current mode"},
	{"/mode [chat|studio]", "switch mode, or toggle without an argument"},
	{"/attach <path>", "attach a PNG, JPEG or WebP image (studio)"},
	{"/detach", "remove the attached image"},
	{"/theme [dark|light]", "switch theme, or toggle without an argument"},
	{"/copy", "copy the last reply to the clipboard"},
	{"/export [md|json] [dir]", "write the conversation to a file"},
	{"/quit", "exit"},
}

// handleCommand runs a "/name args..." line.
func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	handler, ok := commandHandlers[name]
	if !ok {
		m.setError(fmt.Errorf("unknown command %s, type /help for commands", fields[0]))
		return m, nil
	}
	m.log.Debug().Str("command", name).Msg("COMMAND")
	return handler(&m, fields[1:])
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelpCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	m.refresh(!m.showHelp)
	return *m, nil
}

func handleQuitCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	return *m, tea.Quit
}

func handleClearCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	m.clearConversation()
	m.setStatus("Conversation cleared")
	return *m, nil
}

func handleModeCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	target := m.conv.Mode().Toggle()
	if len(args) > 0 {
		mode, err := model.ParseMode(args[0])
		if err != nil {
			m.setError(err)
			return *m, nil
		}
		target = mode
	}
	if target == m.conv.Mode() {
		m.setStatus("Already in " + target.DisplayName())
		return *m, nil
	}
	cmd := m.switchMode(target, true)
	return *m, cmd
}

func handleAttachCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if !m.conv.Mode().AllowsAttachments() {
		m.setError(errRequiresStudio)
		return *m, nil
	}
	if len(args) == 0 {
		m.setError(errors.New("usage: /attach <path to image>"))
		return *m, nil
	}
	path := strings.Join(args, " ")
	m.setStatus("Loading " + path + "...")
	return *m, loadAttachmentCmd(path)
}

func handleDetachCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if m.attachment == nil {
		m.setStatus("Nothing attached")
		return *m, nil
	}
	m.setStatus("Removed " + m.attachment.Name)
	m.attachment = nil
	m.layout()
	return *m, nil
}

func handleThemeCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	want := !m.theme.IsDark
	if len(args) > 0 {
		switch styles.ParsePreference(args[0]) {
		case styles.PreferDark:
			want = true
		case styles.PreferLight:
			want = false
		default:
			m.setError(fmt.Errorf("unknown theme %q (want dark or light)", args[0]))
			return *m, nil
		}
	}
	if want != m.theme.IsDark {
		m.theme.Toggle()
		m.refresh(false)
	}
	m.savedTheme = m.theme.Name()
	m.setStatus("Theme: " + m.theme.Name())
	return *m, m.saveState()
}

func handleCopyCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	m.copyLastReply()
	return *m, nil
}

func handleExportCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	format := "md"
	dir := m.exportDir
	if len(args) > 0 {
		format = args[0]
	}
	if len(args) > 1 {
		dir = expandHome(strings.Join(args[1:], " "))
	}

	opts := export.DefaultOptions()
	opts.OutputDir = dir
	if images := m.images; images != nil {
		opts.LinkImage = func(dataURL string) string {
			info, err := images.Save(dataURL)
			if err != nil {
				return ""
			}
			return info.Path
		}
	}
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		m.setError(err)
		return *m, nil
	}

	transcript := export.NewTranscript(m.conv.Mode(), m.modelName(), m.conv.Messages())
	if len(transcript.Messages) == 0 {
		m.setStatus("Nothing to export yet")
		return *m, nil
	}
	m.setStatus("Exporting...")
	return *m, func() tea.Msg {
		path, err := export.ExportToFile(transcript, exporter, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// copyLastReply copies the newest model reply. A reply that is a single code
// block copies just the code.
func (m *Model) copyLastReply() {
	msgs := m.conv.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		msg := msgs[i]
		if msg.Role != model.RoleModel || msg.IsWelcome() || msg.IsError() {
			continue
		}
		text := strings.TrimSpace(msg.Text())
		if text == "" {
			continue
		}
		if _, code, ok := components.SingleCodeBlock(text); ok {
			text = code
		}
		if err := m.clipboard(text); err != nil {
			m.setError(fmt.Errorf("copy failed: %w", err))
			return
		}
		m.setStatus(fmt.Sprintf("Copied %d chars", len([]rune(text))))
		return
	}
	m.setStatus("No reply to copy")
}
