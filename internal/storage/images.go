// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/webp"

	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/util"
)

// ImageInfo describes a stored image.
type ImageInfo struct {
	Path     string
	MIMEType string
	Bytes    int
	// Width and Height are zero when the data cannot be decoded.
	Width  int
	Height int
}

// ImageStore writes image data URLs to disk under their content hash, so the
// same image is stored once no matter how often it is rendered.
type ImageStore struct {
	dir string

	mu    sync.Mutex
	known map[string]ImageInfo
}

// NewImageStore returns a store rooted at dir.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir, known: make(map[string]ImageInfo)}
}

// Dir returns the root directory.
func (s *ImageStore) Dir() string { return s.dir }

// Save decodes dataURL and writes it unless an identical image is already
// stored.
func (s *ImageStore) Save(dataURL string) (ImageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.known[dataURL]; ok {
		return info, nil
	}

	mime, data, err := gemini.ParseDataURL(dataURL)
	if err != nil {
		return ImageInfo{}, err
	}
	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:8]) + extensionFor(mime)
	info := Describe(mime, data)
	info.Path = filepath.Join(s.dir, name)

	if _, err := os.Stat(info.Path); errors.Is(err, fs.ErrNotExist) {
		if err := util.AtomicWriteFile(info.Path, data, 0600); err != nil {
			return ImageInfo{}, fmt.Errorf("save image: %w", err)
		}
	}
	s.known[dataURL] = info
	return info, nil
}

// Describe reports size and dimensions without storing anything.
func Describe(mime string, data []byte) ImageInfo {
	info := ImageInfo{MIMEType: mime, Bytes: len(data)}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	}
	return info
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
