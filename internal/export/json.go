// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/dai-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts as JSON. Image parts follow the same
// EmbedImages / LinkImage rules as Markdown so files stay small by default.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a transcript to indented JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	out := *t
	out.Messages = make([]model.Message, len(t.Messages))
	for i, m := range t.Messages {
		parts := make([]model.MessagePart, len(m.Parts))
		for j, p := range m.Parts {
			if p.IsImage() {
				p.Image = e.options.imageRef(p.Image)
			}
			parts[j] = p
		}
		m.Parts = parts
		out.Messages[i] = m
	}
	return json.MarshalIndent(&out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
