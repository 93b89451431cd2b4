// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// Mode selects which hosted model a turn is sent to.
type Mode string

const (
	// ModeChat is the multi-turn text conversation.
	ModeChat Mode = "text"
	// ModeStudio is single-shot image generation and editing.
	ModeStudio Mode = "image"
)

// ParseMode accepts the canonical names and the aliases used on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "chat":
		return ModeChat, nil
	case "image", "studio", "paint":
		return ModeStudio, nil
	}
	return "", fmt.Errorf("unknown mode %q (want chat or studio)", s)
}

// String returns the canonical name.
func (m Mode) String() string { return string(m) }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeStudio {
		return ModeChat
	}
	return ModeStudio
}

// DisplayName is the title shown in the header.
func (m Mode) DisplayName() string {
	if m == ModeStudio {
		return "D'Ai - Paint 🍌"
	}
	return "D'Ai - 2.5"
}

// Placeholder is the input hint for the mode.
func (m Mode) Placeholder() string {
	if m == ModeStudio {
		return "Upload an image and/or describe..."
	}
	return "Type your message..."
}

// AllowsAttachments reports whether images may be attached in this mode.
func (m Mode) AllowsAttachments() bool { return m == ModeStudio }

// =============================================================================
// WELCOME MESSAGES
// =============================================================================

const (
	WelcomeChatID   = "initial-welcome"
	WelcomeStudioID = "initial-paint-welcome"
)

const (
	welcomeChatText   = "Hello! I'm **D'Ai (Gemini 2.5)** — your assistant for code, explanations, and images."
	welcomeStudioText = "Welcome to **D'Ai - Paint**! 🍌\n\nI can create new images from your descriptions or edit photos you upload. Just describe what you want or drop in a file to get started."
)

// WelcomeMessage returns the sentinel message that seeds the history of mode.
func WelcomeMessage(mode Mode) Message {
	if mode == ModeStudio {
		return Message{ID: WelcomeStudioID, Role: RoleModel, Parts: []MessagePart{TextPart(welcomeStudioText)}}
	}
	return Message{ID: WelcomeChatID, Role: RoleModel, Parts: []MessagePart{TextPart(welcomeChatText)}}
}
