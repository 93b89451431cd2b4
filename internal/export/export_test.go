// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/dai-tui/internal/model"
)

func sampleTranscript() *Transcript {
	return NewTranscript(model.ModeStudio, "gemini-2.5-flash-image-preview", []model.Message{
		model.WelcomeMessage(model.ModeStudio),
		model.NewUserMessage(model.ImagePart("data:image/png;base64,AAAA"), model.TextPart("make it *purple*")),
		model.NewModelMessage(model.ImagePart("data:image/png;base64,BBBB"), model.TextPart("Here you go.")),
	})
}

func TestNewTranscript_SkipsWelcome(t *testing.T) {
	tr := sampleTranscript()
	if len(tr.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(tr.Messages))
	}
	if tr.Title() != "make it *purple*" {
		t.Errorf("Title() = %q", tr.Title())
	}
}

func TestTitle_FallsBackToMode(t *testing.T) {
	tr := NewTranscript(model.ModeChat, "m", nil)
	if tr.Title() != model.ModeChat.DisplayName() {
		t.Errorf("Title() = %q", tr.Title())
	}
}

func TestMarkdownExporter(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeTimestamps = false
	opts.LinkImage = func(url string) string {
		if strings.HasSuffix(url, "BBBB") {
			return "/images/b.png"
		}
		return ""
	}

	out, err := NewMarkdownExporter(opts).Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"mode: image\n",
		"# make it \\*purple\\*",
		"### You\n\n*[image 1 not included]*\n\nmake it *purple*",
		"### D'Ai\n\n![image 1](/images/b.png)\n\nHere you go.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n---\n%s", want, md)
		}
	}
	if strings.Contains(md, "base64") {
		t.Error("image data should not be embedded by default")
	}
}

func TestMarkdownExporter_Empty(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(NewTranscript(model.ModeChat, "m", []model.Message{model.WelcomeMessage(model.ModeChat)}))
	if err == nil {
		t.Error("exporting only the welcome message should fail")
	}
}

func TestJSONExporter_EmbedImages(t *testing.T) {
	opts := DefaultOptions()
	opts.EmbedImages = true

	out, err := NewJSONExporter(opts).Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var decoded Transcript
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := decoded.Messages[1].Parts[0].Image; got != "data:image/png;base64,BBBB" {
		t.Errorf("embedded image = %q", got)
	}
}

func TestJSONExporter_DoesNotMutateTranscript(t *testing.T) {
	tr := sampleTranscript()
	if _, err := NewJSONExporter(nil).Export(tr); err != nil {
		t.Fatal(err)
	}
	if tr.Messages[0].Parts[0].Image != "data:image/png;base64,AAAA" {
		t.Error("Export must not modify the transcript")
	}
}

func TestExportToFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := ExportToFile(sampleTranscript(), NewMarkdownExporter(opts), opts)
	if err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}
	if filepath.Dir(path) != opts.OutputDir || filepath.Ext(path) != ".md" {
		t.Errorf("path = %q", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "dai_make_it_") {
		t.Errorf("file name = %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"": ".md", "md": ".md", "Markdown": ".md", "json": ".json"} {
		e, err := ForFormat(format, nil)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", format, err)
		}
		if e.FileExtension() != ext {
			t.Errorf("ForFormat(%q) ext = %q", format, e.FileExtension())
		}
	}
	if _, err := ForFormat("pdf", nil); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":            "conversation",
		"a/b:c":       "a-b-c",
		"hello world": "hello_world",
		"tab\there":   "tab_here",
		"ok-name_1":   "ok-name_1",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
