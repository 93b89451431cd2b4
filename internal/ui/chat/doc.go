// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main Bubble Tea model of the dai TUI.
//
// The model owns the widgets (viewport, textarea, spinner) and the
// onboarding popups. Conversation state lives in a
// conversation.Orchestrator, which this package drives: user input becomes
// Orchestrator.Submit, request results are fed to Orchestrator.Update, and
// the history is re-rendered after every change.
//
// # Layout
//
//	header      mode title, model, hints
//	viewport    rendered history
//	status      thinking indicator, errors, notices
//	attachment  pending studio upload (studio only)
//	input       textarea, Enter sends, Alt+Enter inserts a newline
//	help bar    key hints
//
// # Commands
//
// Lines starting with "/" are slash commands, see commands.go.
package chat
