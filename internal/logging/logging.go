// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging owns the process-wide zerolog logger.
//
// The TUI owns stdout and stderr while it runs, so log output goes to a file
// (see OpenFile). Until InitLogger is called every logger is a no-op, which
// keeps tests quiet.
//
// # Usage
//
//	f, _ := logging.OpenFile(cfg.LogPath())
//	logging.InitLogger(f, logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Pretty)
//	log := logging.For("gemini")
//	log.Info().Str("op", "send_turn").Msg("request ok")
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var root atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	root.Store(&nop)
}

// InitLogger replaces the process logger. pretty switches to the human
// readable console writer, used by --log-pretty when tailing the file.
func InitLogger(w io.Writer, level zerolog.Level, pretty bool) {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	root.Store(&l)
}

// L returns the process logger.
func L() *zerolog.Logger {
	return root.Load()
}

// For returns a child logger tagged with component.
func For(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}

// ParseLevel maps a config string to a zerolog level. Unknown values fall back
// to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// OpenFile opens path for appending, creating the parent directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
