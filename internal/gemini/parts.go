// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"encoding/base64"

	"google.golang.org/genai"
)

// =============================================================================
// RAW PARTS
// =============================================================================

// RawPart is one content part exactly as the service returned it. The set of
// implementations is closed; switch on the concrete type.
type RawPart interface {
	rawPart()
}

// TextPart is plain model text.
type TextPart struct {
	Text string
}

// InlineImagePart is an inline image. Data is base64 encoded.
type InlineImagePart struct {
	MIMEType string
	Data     string
}

// StructuredPart is a non-text payload such as a function call or executable
// code. Value is whatever the SDK decoded and may not be serializable.
type StructuredPart struct {
	Value any
}

// UnrecognizedPart is anything the gateway does not know how to show.
type UnrecognizedPart struct{}

func (TextPart) rawPart()         {}
func (InlineImagePart) rawPart()  {}
func (StructuredPart) rawPart()   {}
func (UnrecognizedPart) rawPart() {}

// Reply is the unprocessed result of SendTurn or GenerateOrEdit.
type Reply struct {
	Parts []RawPart
	// FinishReason is the service's stated completion reason, "STOP" for a
	// normal finish. When the prompt itself was blocked it carries the block
	// reason instead.
	FinishReason string
}

// fromGenaiPart maps one SDK part onto the RawPart union.
func fromGenaiPart(p *genai.Part) RawPart {
	switch {
	case p == nil:
		return UnrecognizedPart{}
	case p.InlineData != nil:
		return InlineImagePart{
			MIMEType: p.InlineData.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
		}
	case p.Thought:
		// Thought summaries are internal reasoning, never shown.
		return UnrecognizedPart{}
	case p.Text != "":
		return TextPart{Text: p.Text}
	case p.FunctionCall != nil:
		return StructuredPart{Value: p.FunctionCall}
	case p.FunctionResponse != nil:
		return StructuredPart{Value: p.FunctionResponse}
	case p.ExecutableCode != nil:
		return StructuredPart{Value: p.ExecutableCode}
	case p.CodeExecutionResult != nil:
		return StructuredPart{Value: p.CodeExecutionResult}
	default:
		return UnrecognizedPart{}
	}
}

// replyFromResponse flattens the first candidate of resp.
func replyFromResponse(resp *genai.GenerateContentResponse) Reply {
	var r Reply
	if resp == nil {
		return r
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			r.FinishReason = string(resp.PromptFeedback.BlockReason)
		}
		return r
	}
	cand := resp.Candidates[0]
	r.FinishReason = string(cand.FinishReason)
	if cand.Content == nil {
		return r
	}
	r.Parts = make([]RawPart, 0, len(cand.Content.Parts))
	for _, p := range cand.Content.Parts {
		r.Parts = append(r.Parts, fromGenaiPart(p))
	}
	return r
}
