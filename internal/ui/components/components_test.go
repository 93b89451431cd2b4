// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/storage"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(styles.PreferDark)
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(100)

	view := h.View()
	if !strings.Contains(view, "D'Ai - 2.5") {
		t.Errorf("chat header should show the chat title, got %q", view)
	}

	h.SetMode(model.ModeStudio, "gemini-2.5-flash-image-preview")
	view = h.View()
	if !strings.Contains(view, "D'Ai - Paint") {
		t.Errorf("studio header should show the studio title, got %q", view)
	}
	if !strings.Contains(view, "gemini-2.5-flash-image-preview") {
		t.Error("header should show the model name when it fits")
	}
}

func TestHeaderWidth(t *testing.T) {
	widths := []int{10, 40, 80, 160}
	for _, width := range widths {
		h := NewHeader(testTheme())
		h.SetMode(model.ModeChat, "gemini-2.5-flash")
		h.SetWidth(width)

		want := width
		if want < 30 {
			want = 30
		}
		if got := lipgloss.Width(h.View()); got != want {
			t.Errorf("width %d: header rendered %d columns, want %d", width, got, want)
		}
	}
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestSingleCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantLang string
		wantCode string
	}{
		{"go block", "```go\nfmt.Println(1)\n```", true, "go", "fmt.Println(1)\n"},
		{"no language", "```\nls -la\n```", true, DefaultCodeLanguage, "ls -la\n"},
		{"surrounding whitespace", "\n  ```py\nx = 1\n```  \n", true, "py", "x = 1\n"},
		{"prose before", "Here:\n```go\nx\n```", false, "", ""},
		{"prose after", "```go\nx\n```\nDone.", false, "", ""},
		{"plain text", "hello", false, "", ""},
		{"unterminated", "```go\nx", false, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lang, code, ok := SingleCodeBlock(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if lang != tc.wantLang || code != tc.wantCode {
				t.Errorf("got (%q, %q), want (%q, %q)", lang, code, tc.wantLang, tc.wantCode)
			}
		})
	}
}

func TestCodeBlockRender(t *testing.T) {
	cb := NewCodeBlock(testTheme(), "go", "package main\n\nfunc main() {}\n")
	out := cb.Render()

	if !strings.Contains(out, "go") {
		t.Error("code block should show its language label")
	}
	if !strings.Contains(out, "ctrl+y to copy") {
		t.Error("code block should show the copy hint")
	}
	// Three numbered lines.
	for _, n := range []string{"1", "2", "3"} {
		if !strings.Contains(out, n) {
			t.Errorf("code block should number line %s", n)
		}
	}
}

func TestHighlightCodeUnknownLanguage(t *testing.T) {
	out := highlightCode("just words", "no-such-language", "no-such-style")
	if !strings.Contains(out, "just") || !strings.Contains(out, "words") {
		t.Errorf("fallback highlighting lost the code: %q", out)
	}
}

// =============================================================================
// MESSAGE RENDERER TESTS
// =============================================================================

type fakeSaver struct {
	saved []string
	err   error
}

func (f *fakeSaver) Save(dataURL string) (storage.ImageInfo, error) {
	if f.err != nil {
		return storage.ImageInfo{}, f.err
	}
	f.saved = append(f.saved, dataURL)
	return storage.ImageInfo{Path: "/tmp/dai/abc.png", MIMEType: "image/png", Bytes: 2048, Width: 64, Height: 32}, nil
}

func TestMessageRenderer_TextAndRoles(t *testing.T) {
	r := NewMessageRenderer(testTheme(), nil)
	r.SetWidth(80)

	user := r.Render(model.NewUserMessage(model.TextPart("hello there")))
	if !strings.Contains(user, "You") || !strings.Contains(user, "hello") {
		t.Errorf("user bubble = %q", user)
	}

	bot := r.Render(model.NewModelMessage(model.TextPart("**bold** reply")))
	if !strings.Contains(bot, "D'Ai") || !strings.Contains(bot, "bold") {
		t.Errorf("model bubble = %q", bot)
	}
	if strings.Contains(bot, "**") {
		t.Error("markdown should be rendered, not shown raw")
	}
}

func TestMessageRenderer_CodeOnlyMessage(t *testing.T) {
	r := NewMessageRenderer(testTheme(), nil)
	out := r.Render(model.NewModelMessage(model.TextPart("```python\nprint('hi')\n```")))
	if !strings.Contains(out, "python") || !strings.Contains(out, "ctrl+y to copy") {
		t.Errorf("code-only message should render as a code block: %q", out)
	}
}

func TestMessageRenderer_Images(t *testing.T) {
	saver := &fakeSaver{}
	r := NewMessageRenderer(testTheme(), saver)

	msg := model.NewModelMessage(
		model.ImagePart("data:image/png;base64,AAAA"),
		model.TextPart("a fox"),
	)
	out := r.Render(msg)

	if len(saver.saved) != 1 || saver.saved[0] != "data:image/png;base64,AAAA" {
		t.Errorf("saved = %v", saver.saved)
	}
	if !strings.Contains(out, "[image 1]") || !strings.Contains(out, "/tmp/dai/abc.png") {
		t.Errorf("image reference missing: %q", out)
	}
	if !strings.Contains(out, "64x32") {
		t.Errorf("image dimensions missing: %q", out)
	}
	// Image comes before the text, as in the message.
	if strings.Index(out, "[image 1]") > strings.Index(out, "fox") {
		t.Error("part order should be preserved")
	}
}

func TestMessageRenderer_ImageSaveFailure(t *testing.T) {
	r := NewMessageRenderer(testTheme(), &fakeSaver{err: errors.New("disk full")})
	out := r.Render(model.NewModelMessage(model.ImagePart("data:image/png;base64,AAAA")))
	if !strings.Contains(out, "disk") {
		t.Errorf("save failure should be shown: %q", out)
	}
}

func TestMessageRenderer_ImageSaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	r := NewMessageRenderer(testTheme(), &fakeSaver{err: errors.New("disk full")})
	r.log = zerolog.New(&buf)

	r.Render(model.NewModelMessage(model.ImagePart("data:image/png;base64,AAAA")))

	logged := buf.String()
	if !strings.Contains(logged, "IMAGE_SAVE_FAILED") || !strings.Contains(logged, "disk full") {
		t.Errorf("log = %q", logged)
	}
}

type failingMarkdown struct{ err error }

func (f failingMarkdown) Render(string) (string, error) { return "", f.err }

func TestMessageRenderer_MarkdownFailureFallsBack(t *testing.T) {
	var buf bytes.Buffer
	r := NewMessageRenderer(testTheme(), nil)
	r.log = zerolog.New(&buf).Level(zerolog.DebugLevel)
	r.newMarkdown = func(string, int) (markdownRenderer, error) {
		return failingMarkdown{err: errors.New("bad markdown")}, nil
	}

	out := r.Render(model.NewModelMessage(model.TextPart("plain words survive")))

	if !strings.Contains(out, "plain") || !strings.Contains(out, "survive") {
		t.Errorf("fallback should show the raw text: %q", out)
	}
	logged := buf.String()
	if !strings.Contains(logged, "RENDER_FALLBACK") || !strings.Contains(logged, "bad markdown") {
		t.Errorf("the render error should be logged: %q", logged)
	}
}

func TestMessageRenderer_ErrorMessage(t *testing.T) {
	r := NewMessageRenderer(testTheme(), nil)
	out := r.Render(model.NewErrorMessage("Sorry, something went wrong: network down"))
	if !strings.Contains(out, "network") {
		t.Errorf("error bubble = %q", out)
	}
}

func TestDescribeImage(t *testing.T) {
	tests := []struct {
		info storage.ImageInfo
		want string
	}{
		{storage.ImageInfo{MIMEType: "image/png", Bytes: 100, Width: 10, Height: 20}, "(10x20 png, 100 B)"},
		{storage.ImageInfo{MIMEType: "image/webp", Bytes: 4096}, "(webp, 4 KB)"},
		{storage.ImageInfo{MIMEType: "image/jpeg", Bytes: 3 << 20, Width: 1, Height: 1}, "(1x1 jpeg, 3.0 MB)"},
	}
	for _, tc := range tests {
		if got := DescribeImage(tc.info); got != tc.want {
			t.Errorf("DescribeImage(%+v) = %q, want %q", tc.info, got, tc.want)
		}
	}
}

// =============================================================================
// POPUP AND CHIP TESTS
// =============================================================================

func TestPopups(t *testing.T) {
	theme := testTheme()

	intro := IntroPopup()
	if !intro.Visible() || intro.Kind != PopupIntro {
		t.Fatal("intro popup should be visible")
	}
	view := intro.View(theme, 80, 24)
	for _, want := range []string{"Discover D'Ai - Paint!", "Try Now", "Later"} {
		if !strings.Contains(view, want) {
			t.Errorf("intro popup missing %q", want)
		}
	}
	if got := lipgloss.Height(view); got != 24 {
		t.Errorf("popup should fill the area height, got %d", got)
	}

	notice := StudioNoticePopup()
	view = notice.View(theme, 60, 20)
	if !strings.Contains(view, "D'Ai Paint Upgraded!") || strings.Contains(view, "Later") {
		t.Errorf("studio notice = %q", view)
	}

	if (Popup{}).Visible() {
		t.Error("zero popup should not be visible")
	}
}

func TestAttachmentChip(t *testing.T) {
	theme := testTheme()
	if AttachmentChip(theme, nil, 80) != "" {
		t.Error("no file should render nothing")
	}
	out := AttachmentChip(theme, &model.UploadedFile{Name: "cat.png", MIMEType: "image/png"}, 80)
	if !strings.Contains(out, "cat.png") || !strings.Contains(out, "/detach") {
		t.Errorf("chip = %q", out)
	}
}
