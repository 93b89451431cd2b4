// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/model"
)

// MaxAttachmentBytes caps uploads at the inline request limit of the API.
const MaxAttachmentBytes = 20 << 20

// ErrUnsupportedImage is returned for files that are not png, jpeg or webp.
var ErrUnsupportedImage = errors.New("only PNG, JPEG and WebP images can be attached")

// LoadAttachment reads an image file into an UploadedFile with a data URL.
func LoadAttachment(path string) (*model.UploadedFile, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, errors.New("usage: /attach <path to image>")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attach: %s is a directory", path)
	}
	if info.Size() > MaxAttachmentBytes {
		return nil, fmt.Errorf("attach: %s is %d MB, the limit is %d MB",
			filepath.Base(path), info.Size()>>20, MaxAttachmentBytes>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}

	mimeType := detectImageType(path, data)
	if !model.IsAcceptedImageType(mimeType) {
		return nil, fmt.Errorf("%w (got %s)", ErrUnsupportedImage, mimeType)
	}

	return &model.UploadedFile{
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Data:     gemini.DataURLFromBytes(mimeType, data),
	}, nil
}

// detectImageType sniffs the content first and falls back to the extension.
func detectImageType(path string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return sniffed
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// loadAttachmentCmd reads the file off the event loop.
func loadAttachmentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := LoadAttachment(path)
		return AttachmentLoadedMsg{File: file, Err: err}
	}
}
