// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "D'Ai"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE PARTS
// =============================================================================

// PartKind tags the variant held by a MessagePart.
type PartKind string

const (
	PartText  PartKind = "text"
	PartImage PartKind = "image"
)

// MessagePart is one displayable fragment of a message. Exactly one of Text or
// Image is meaningful, selected by Kind. Image is always a self-contained
// data URL ("data:<mime>;base64,<payload>").
type MessagePart struct {
	Kind  PartKind `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Image string   `json:"image,omitempty"`
}

// TextPart builds a text fragment.
func TextPart(text string) MessagePart {
	return MessagePart{Kind: PartText, Text: text}
}

// ImagePart builds an image fragment from a data URL.
func ImagePart(dataURL string) MessagePart {
	return MessagePart{Kind: PartImage, Image: dataURL}
}

// IsText reports whether the part carries text.
func (p MessagePart) IsText() bool { return p.Kind == PartText }

// IsImage reports whether the part carries an image.
func (p MessagePart) IsImage() bool { return p.Kind == PartImage }

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in the chat history. Messages are never edited after
// they are appended.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Parts     []MessagePart `json:"parts"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewMessage creates a message with a fresh ID of the form "<prefix>-<uuid>".
func NewMessage(prefix string, role Role, parts ...MessagePart) Message {
	return Message{
		ID:        prefix + "-" + uuid.NewString(),
		Role:      role,
		Parts:     parts,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a user turn.
func NewUserMessage(parts ...MessagePart) Message {
	return NewMessage("user", RoleUser, parts...)
}

// NewModelMessage creates a model turn.
func NewModelMessage(parts ...MessagePart) Message {
	return NewMessage("model", RoleModel, parts...)
}

// NewErrorMessage creates the model turn that reports a failed request.
func NewErrorMessage(text string) Message {
	return NewMessage("error", RoleModel, TextPart(text))
}

// Text returns the concatenated text parts of the message.
func (m Message) Text() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if p.IsText() {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// Images returns the image data URLs in display order.
func (m Message) Images() []string {
	var out []string
	for _, p := range m.Parts {
		if p.IsImage() {
			out = append(out, p.Image)
		}
	}
	return out
}

// IsWelcome reports whether m is one of the per-mode welcome sentinels.
func (m Message) IsWelcome() bool {
	return m.ID == WelcomeChatID || m.ID == WelcomeStudioID
}

// IsError reports whether m reports a failed request.
func (m Message) IsError() bool {
	return strings.HasPrefix(m.ID, "error-")
}

// =============================================================================
// UPLOADED FILE
// =============================================================================

// UploadedFile is an image attached to the next studio turn. Data is a data URL.
type UploadedFile struct {
	Name     string
	MIMEType string
	Data     string
}

// AcceptedImageTypes lists the MIME types accepted for upload.
var AcceptedImageTypes = []string{"image/png", "image/jpeg", "image/webp"}

// IsAcceptedImageType reports whether mime may be attached.
func IsAcceptedImageType(mime string) bool {
	for _, t := range AcceptedImageTypes {
		if t == mime {
			return true
		}
	}
	return false
}
