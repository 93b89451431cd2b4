// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete dai configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Gemini  GeminiConfig  `toml:"gemini" json:"gemini"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// GeminiConfig holds the credential and model names.
type GeminiConfig struct {
	// APIKey is usually supplied through GEMINI_API_KEY rather than the file.
	APIKey      string `toml:"api_key" json:"api_key,omitempty"`
	ChatModel   string `toml:"chat_model" json:"chat_model"`
	ImageModel  string `toml:"image_model" json:"image_model"`
	StudioModel string `toml:"studio_model" json:"studio_model"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// DefaultMode is the mode at startup: "chat" or "studio".
	DefaultMode string `toml:"default_mode" json:"default_mode"`
	// WordWrap caps the markdown wrap width. 0 follows the terminal.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// StorageConfig holds on-disk locations.
type StorageConfig struct {
	// DataDir holds state.json, images/ and the log. Defaults to ~/.dai.
	DataDir string `toml:"data_dir" json:"data_dir"`
	// SaveImages writes every displayed image to DataDir/images.
	SaveImages bool `toml:"save_images" json:"save_images"`
}

// LoggingConfig controls the zerolog file logger.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	// File defaults to DataDir/dai.log.
	File   string `toml:"file" json:"file"`
	Pretty bool   `toml:"pretty" json:"pretty"`
}

// ErrMissingAPIKey is returned by RequireAPIKey.
var ErrMissingAPIKey = fmt.Errorf("%w: set GEMINI_API_KEY (or DAI_API_KEY / API_KEY) or gemini.api_key in the config file", gemini.ErrConfiguration)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Gemini: GeminiConfig{
			ChatModel:   gemini.DefaultChatModel,
			ImageModel:  gemini.DefaultImageModel,
			StudioModel: gemini.DefaultStudioModel,
		},
		UI: UIConfig{
			Theme:       "auto",
			DefaultMode: "chat",
		},
		Storage: StorageConfig{
			SaveImages: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the default dai directory, ~/.dai.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".dai"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir returns the resolved data directory.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	if dir, err := ConfigDir(); err == nil {
		return dir
	}
	return ".dai"
}

// StatePath is where onboarding flags and the theme are kept.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir(), "state.json")
}

// ImagesDir is where displayed images are written.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.DataDir(), "images")
}

// LogPath returns the log file path.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.DataDir(), "dai.log")
}

// Mode returns the parsed startup mode.
func (c *Config) Mode() model.Mode {
	m, err := model.ParseMode(c.UI.DefaultMode)
	if err != nil {
		return model.ModeChat
	}
	return m
}

// ensureSecurePermissions tightens a config file to 0600 since it may hold a key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.dai/config.toml, falling back to config.json and then to the
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads a specific file. Files ending in .json are read as JSON,
// anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores defaults for values a file blanked out.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Gemini.ChatModel == "" {
		cfg.Gemini.ChatModel = defaults.Gemini.ChatModel
	}
	if cfg.Gemini.ImageModel == "" {
		cfg.Gemini.ImageModel = defaults.Gemini.ImageModel
	}
	if cfg.Gemini.StudioModel == "" {
		cfg.Gemini.StudioModel = defaults.Gemini.StudioModel
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.DefaultMode == "" {
		cfg.UI.DefaultMode = defaults.UI.DefaultMode
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML location.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions. The API key is never
// written; it belongs in the environment.
func SaveTOML(cfg *Config, path string) error {
	out := *cfg
	out.Gemini.APIKey = ""

	var buf bytes.Buffer
	buf.WriteString("# dai configuration file\n")
	buf.WriteString("# The API key is read from GEMINI_API_KEY; api_key below is optional.\n\n")
	if err := toml.NewEncoder(&buf).Encode(&out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"dark": true, "light": true, "auto": true}
	validLogLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "off": true}
)

// Validate checks the configuration. The API key is not checked here; see
// RequireAPIKey.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Gemini.ChatModel) == "" {
		errs = append(errs, ValidationError{"gemini.chat_model", "must not be empty"})
	}
	if strings.TrimSpace(c.Gemini.ImageModel) == "" {
		errs = append(errs, ValidationError{"gemini.image_model", "must not be empty"})
	}
	if strings.TrimSpace(c.Gemini.StudioModel) == "" {
		errs = append(errs, ValidationError{"gemini.studio_model", "must not be empty"})
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("invalid value %q (must be dark, light or auto)", c.UI.Theme)})
	}
	if _, err := model.ParseMode(c.UI.DefaultMode); err != nil {
		errs = append(errs, ValidationError{"ui.default_mode", err.Error()})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{"ui.word_wrap", "must not be negative"})
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{"logging.level", fmt.Sprintf("invalid value %q", c.Logging.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequireAPIKey fails with ErrMissingAPIKey when no credential is configured.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// IsMissingAPIKey reports whether err is the missing credential error.
func IsMissingAPIKey(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// apiKeyEnvVars are checked in order; the first non-empty one wins.
var apiKeyEnvVars = []string{"DAI_API_KEY", "GEMINI_API_KEY", "API_KEY"}

// ApplyEnvOverrides applies environment variables over the loaded values:
//   - DAI_API_KEY, GEMINI_API_KEY, API_KEY: gemini.api_key
//   - DAI_CHAT_MODEL, DAI_IMAGE_MODEL, DAI_STUDIO_MODEL: model names
//   - DAI_THEME: ui.theme
//   - DAI_MODE: ui.default_mode
//   - DAI_DATA_DIR: storage.data_dir
//   - DAI_LOG_LEVEL: logging.level
func (c *Config) ApplyEnvOverrides() {
	for _, name := range apiKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			c.Gemini.APIKey = key
			break
		}
	}

	overrides := []struct {
		env string
		dst *string
	}{
		{"DAI_CHAT_MODEL", &c.Gemini.ChatModel},
		{"DAI_IMAGE_MODEL", &c.Gemini.ImageModel},
		{"DAI_STUDIO_MODEL", &c.Gemini.StudioModel},
		{"DAI_THEME", &c.UI.Theme},
		{"DAI_MODE", &c.UI.DefaultMode},
		{"DAI_DATA_DIR", &c.Storage.DataDir},
		{"DAI_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// String renders the configuration as JSON with the key redacted.
func (c *Config) String() string {
	safe := *c
	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
