// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"

	"github.com/jeranaias/dai-tui/internal/logging"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/storage"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// ImageSaver persists an image data URL and reports where it went.
type ImageSaver interface {
	Save(dataURL string) (storage.ImageInfo, error)
}

// markdownRenderer is the part of *glamour.TermRenderer the renderer uses.
type markdownRenderer interface {
	Render(in string) (string, error)
}

// MessageRenderer draws history entries as bubbles. It caches one glamour
// renderer per (style, width) pair since building one is expensive.
type MessageRenderer struct {
	theme  *styles.Theme
	images ImageSaver
	log    zerolog.Logger
	width  int
	// wrapCap limits the text width on wide terminals. 0 means no cap.
	wrapCap int

	newMarkdown func(style string, width int) (markdownRenderer, error)
	md          markdownRenderer
	mdStyle     string
	mdWidth     int
}

// NewMessageRenderer creates a renderer. images may be nil, in which case
// image parts are described but not saved.
func NewMessageRenderer(theme *styles.Theme, images ImageSaver) *MessageRenderer {
	return &MessageRenderer{
		theme:       theme,
		images:      images,
		log:         logging.For("ui"),
		width:       80,
		newMarkdown: newGlamour,
	}
}

// SetWidth sets the available width for bubbles.
func (r *MessageRenderer) SetWidth(width int) {
	r.width = width
}

// SetWrapCap caps the text width regardless of the terminal width.
func (r *MessageRenderer) SetWrapCap(cols int) {
	r.wrapCap = cols
}

// contentWidth is the text width inside a bubble: margins, border and padding
// take 8 columns.
func (r *MessageRenderer) contentWidth() int {
	w := r.width - 8
	if r.wrapCap > 0 && w > r.wrapCap {
		w = r.wrapCap
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Render draws one message with its role label.
func (r *MessageRenderer) Render(msg model.Message) string {
	inner := r.contentWidth()

	var blocks []string
	imageN := 0
	for _, p := range msg.Parts {
		switch p.Kind {
		case model.PartImage:
			imageN++
			blocks = append(blocks, r.renderImage(p.Image, imageN))
		case model.PartText:
			if strings.TrimSpace(p.Text) == "" {
				continue
			}
			blocks = append(blocks, r.renderText(p.Text, inner))
		}
	}
	body := strings.Join(blocks, "\n")

	bubble := r.theme.ModelBubble
	switch {
	case msg.Role == model.RoleUser:
		bubble = r.theme.UserBubble
	case msg.IsError():
		bubble = r.theme.ErrorBubble
	}
	label := r.theme.RoleLabel.Render(msg.Role.DisplayName())
	if msg.Role == model.RoleUser {
		// User turns hug the right edge.
		rendered := bubble.Render(body)
		return lipgloss.PlaceHorizontal(r.width, lipgloss.Right, label+"\n"+rendered)
	}
	return label + "\n" + bubble.Render(body)
}

// renderText renders one text part: a lone fenced block becomes a code box,
// anything else goes through glamour.
func (r *MessageRenderer) renderText(text string, width int) string {
	if lang, code, ok := SingleCodeBlock(text); ok {
		cb := NewCodeBlock(r.theme, lang, code)
		cb.MaxWidth = width
		return cb.Render()
	}

	var out string
	md, err := r.markdown(width)
	if err == nil {
		out, err = md.Render(text)
	}
	if err == nil {
		return strings.Trim(out, "\n")
	}
	r.log.Debug().Err(err).Msg("RENDER_FALLBACK")
	return wordwrap.String(text, width)
}

func (r *MessageRenderer) markdown(width int) (markdownRenderer, error) {
	style := r.theme.GlamourStyle()
	if r.md != nil && r.mdStyle == style && r.mdWidth == width {
		return r.md, nil
	}
	md, err := r.newMarkdown(style, width)
	if err != nil {
		return nil, err
	}
	r.md, r.mdStyle, r.mdWidth = md, style, width
	return md, nil
}

func newGlamour(style string, width int) (markdownRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

// renderImage saves the image and shows a reference to the file.
func (r *MessageRenderer) renderImage(dataURL string, n int) string {
	label := fmt.Sprintf("[image %d]", n)
	if r.images == nil {
		return r.theme.ImageRef.Render(label)
	}
	info, err := r.images.Save(dataURL)
	if err != nil {
		r.log.Warn().Err(err).Msg("IMAGE_SAVE_FAILED")
		return r.theme.RenderError(label + " could not be saved: " + err.Error())
	}
	return r.theme.ImageRef.Render(label+" "+info.Path) + " " +
		r.theme.ShortcutDesc.Render(DescribeImage(info))
}

// DescribeImage formats "(1024x1024 png, 512 KB)".
func DescribeImage(info storage.ImageInfo) string {
	kind := strings.TrimPrefix(info.MIMEType, "image/")
	size := formatBytes(info.Bytes)
	if info.Width > 0 && info.Height > 0 {
		return fmt.Sprintf("(%dx%d %s, %s)", info.Width, info.Height, kind, size)
	}
	return fmt.Sprintf("(%s, %s)", kind, size)
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
