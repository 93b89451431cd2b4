// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content turns raw gateway parts into displayable message parts.
//
// Normalize is pure and never fails: parts it cannot show are dropped, and a
// reply that ends up with nothing to show is replaced by a single notice.
package content

import (
	"encoding/json"
	"strings"

	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/model"
)

// UnsupportedNotice replaces a structured part that cannot be serialized.
const UnsupportedNotice = "[Unsupported content: Could not format object]"

// FinishStop is the service's normal completion reason.
const FinishStop = "STOP"

// Notices holds the texts used when a reply has nothing displayable.
type Notices struct {
	// Empty is used when the service returned no parts at all.
	Empty string
	// NothingDisplayable is used when every part was dropped.
	NothingDisplayable string
	// Stopped is prefixed to a non-normal finish reason.
	Stopped string
}

// ChatNotices are used for text chat replies.
var ChatNotices = Notices{
	Empty:              "I received a response, but it was empty.",
	NothingDisplayable: "I received a response, but it contained no displayable content.",
	Stopped:            "The response was stopped prematurely. Reason: ",
}

// StudioNotices are used for image studio replies.
var StudioNotices = Notices{
	Empty:              "Nano Banana returned an empty response.",
	NothingDisplayable: "Nano Banana returned an empty response.",
	Stopped:            "Nano Banana stopped prematurely. Reason: ",
}

// Normalize converts parts in order using ChatNotices.
func Normalize(parts []gemini.RawPart, finishReason string) []model.MessagePart {
	return NormalizeWith(parts, finishReason, ChatNotices)
}

// NormalizeWith converts parts in order. The result is never empty: when no
// part survives, a single text part explains why, preferring a non-normal
// finishReason over the generic notice.
func NormalizeWith(parts []gemini.RawPart, finishReason string, notices Notices) []model.MessagePart {
	out := make([]model.MessagePart, 0, len(parts))
	for _, p := range parts {
		if mp, ok := normalizePart(p); ok {
			out = append(out, mp)
		}
	}
	if len(out) > 0 {
		return out
	}

	if finishReason != "" && finishReason != FinishStop {
		return []model.MessagePart{model.TextPart(notices.Stopped + finishReason)}
	}
	if len(parts) == 0 {
		return []model.MessagePart{model.TextPart(notices.Empty)}
	}
	return []model.MessagePart{model.TextPart(notices.NothingDisplayable)}
}

func normalizePart(p gemini.RawPart) (model.MessagePart, bool) {
	switch v := p.(type) {
	case gemini.InlineImagePart:
		return model.ImagePart(gemini.EncodeDataURL(v.MIMEType, v.Data)), true
	case gemini.TextPart:
		return model.TextPart(v.Text), true
	case gemini.StructuredPart:
		return model.TextPart(formatStructured(v.Value)), true
	case gemini.UnrecognizedPart:
		return model.MessagePart{}, false
	default:
		return model.MessagePart{}, false
	}
}

// formatStructured renders v as an indented JSON code block.
func formatStructured(v any) (s string) {
	defer func() {
		// Marshalers on SDK types may panic on unexpected data.
		if recover() != nil {
			s = UnsupportedNotice
		}
	}()
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return UnsupportedNotice
	}
	return "```json\n" + string(b) + "\n```"
}

// JoinText concatenates the text parts of parts.
func JoinText(parts []model.MessagePart) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.IsText() {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
