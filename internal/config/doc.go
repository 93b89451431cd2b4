// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for dai.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - GeminiConfig: API key and model names
//   - UIConfig: theme and initial mode
//   - StorageConfig: data directory for state and generated images
//   - LoggingConfig: log file and level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DAI_*, GEMINI_API_KEY, API_KEY)
//   - ~/.dai/config.toml
//   - ~/.dai/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.RequireAPIKey(); err != nil {
//	    return err // fatal: the UI never starts without a key
//	}
package config
