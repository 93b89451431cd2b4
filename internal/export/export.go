// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable view of a conversation.
type Transcript struct {
	Mode       model.Mode      `json:"mode"`
	Model      string          `json:"model"`
	ExportedAt time.Time       `json:"exported_at"`
	Messages   []model.Message `json:"messages"`
}

// NewTranscript snapshots messages, skipping the welcome sentinel.
func NewTranscript(mode model.Mode, modelName string, messages []model.Message) *Transcript {
	t := &Transcript{Mode: mode, Model: modelName, ExportedAt: time.Now()}
	for _, m := range messages {
		if m.IsWelcome() {
			continue
		}
		t.Messages = append(t.Messages, m)
	}
	return t
}

// Title is a one-line summary taken from the first user text.
func (t *Transcript) Title() string {
	for _, m := range t.Messages {
		if m.Role != model.RoleUser {
			continue
		}
		if line := util.FirstLine(m.Text()); line != "" {
			return util.TruncateWidth(line, 60)
		}
	}
	return t.Mode.DisplayName()
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export renders a transcript in the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// ImageLinker maps an image data URL to a path or URL that the exported file
// can reference. Returning "" leaves the image out.
type ImageLinker func(dataURL string) string

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// IncludeTimestamps adds per-message times.
	IncludeTimestamps bool

	// EmbedImages keeps image data URLs inline in the output. When false,
	// LinkImage (if set) supplies a reference instead.
	EmbedImages bool

	LinkImage ImageLinker
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders t with exporter and writes it into opts.OutputDir.
// It returns the file path.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("dai_%s_%s%s",
		sanitizeFilename(t.Title()),
		t.ExportedAt.Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// ForFormat returns the exporter for a format name ("md", "markdown", "json").
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in file names.
func sanitizeFilename(s string) string {
	runes := []rune(s)
	if len(runes) > 40 {
		runes = runes[:40]
	}

	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			out = append(out, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = append(out, '_')
		case r < 32 || r == 127:
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "conversation"
	}
	return string(out)
}

// imageRef resolves how an image is referenced in an export.
func (o *Options) imageRef(dataURL string) string {
	if o.EmbedImages {
		return dataURL
	}
	if o.LinkImage != nil {
		return o.LinkImage(dataURL)
	}
	return ""
}
