// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/dai-tui/internal/config"
	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/storage"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// isolate points HOME at a temp dir and clears every variable the config
// layer reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, name := range []string{
		"DAI_API_KEY", "GEMINI_API_KEY", "API_KEY",
		"DAI_CHAT_MODEL", "DAI_IMAGE_MODEL", "DAI_STUDIO_MODEL",
		"DAI_THEME", "DAI_MODE", "DAI_DATA_DIR", "DAI_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	return home
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing key", config.ErrMissingAPIKey, ExitConfigError},
		{"wrapped configuration", fmt.Errorf("startup: %w", gemini.ErrConfiguration), ExitConfigError},
		{"config validation", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}), ExitConfigError},
		{"flag validation", NewValidationErrorWithExample("--mode", "x", "unknown mode", ""), ExitUsageError},
		{"no terminal", &TTYRequiredError{Operation: "start"}, ExitUsageError},
		{"cobra unknown flag", errors.New("unknown flag: --bogus"), ExitUsageError},
		{"auth", errors.New("API key not valid. Please pass a valid API key."), ExitAuthError},
		{"timeout", errors.New("context deadline exceeded"), ExitTimeoutError},
		{"network", errors.New("dial tcp: connection refused"), ExitNetworkError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	err := NewCommandError("config", "init", "write failed", os.ErrPermission)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "config init failed: write failed: permission denied", err.Error())
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func TestRun_MissingAPIKeyExitsWithConfigError(t *testing.T) {
	isolate(t)

	code, _, stderr := runArgs()
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr, "GEMINI_API_KEY")
}

func TestRun_BadFlags(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"mode", []string{"--mode", "sculpt"}},
		{"theme", []string{"--theme", "neon"}},
		{"log level", []string{"--log-level", "loud"}},
		{"unknown flag", []string{"--bogus"}},
		{"positional", []string{"hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runArgs(tt.args...)
			assert.Equal(t, ExitUsageError, code)
			assert.Contains(t, stderr, "[ERROR]")
		})
	}
}

func TestRun_InvalidConfigFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(home, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	code, _, stderr := runArgs("--config", path)
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr, "ui.theme")
}

func TestRun_MissingConfigFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	code, _, _ := runArgs("--config", filepath.Join(home, "nope.toml"))
	assert.Equal(t, ExitConfigError, code)
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runArgs("version")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "dai "+Version)
	assert.Contains(t, stdout, GitCommit)
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func TestConfigInitPathShow(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom", "config.toml")

	code, stdout, _ := runArgs("config", "path", "--config", path)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, path+"\n", stdout)

	code, stdout, _ = runArgs("config", "init", "--config", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	code, _, stderr := runArgs("config", "init", "--config", path)
	assert.NotEqual(t, ExitSuccess, code)
	assert.Contains(t, stderr, "--force")

	code, _, _ = runArgs("config", "init", "--force", "--config", path)
	assert.Equal(t, ExitSuccess, code)

	t.Setenv("GEMINI_API_KEY", "secret-key")
	code, stdout, _ = runArgs("config", "show", "--config", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, gemini.DefaultChatModel)
	assert.Contains(t, stdout, "[REDACTED]")
	assert.NotContains(t, stdout, "secret-key")
}

func TestConfigPath_Default(t *testing.T) {
	home := isolate(t)

	code, stdout, _ := runArgs("config", "path")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, filepath.Join(home, ".dai", "config.toml")+"\n", stdout)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig(&rootOptions{mode: "studio", theme: "light", logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "studio", cfg.UI.DefaultMode)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// =============================================================================
// THEME SELECTION
// =============================================================================

func TestThemePreference(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "dark"

	tests := []struct {
		name  string
		flag  string
		state string
		want  styles.Preference
	}{
		{"config only", "", "", styles.PreferDark},
		{"state beats config", "", "light", styles.PreferLight},
		{"flag beats state", "auto", "light", styles.PreferAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := themePreference(cfg, &rootOptions{theme: tt.flag}, storage.State{Theme: tt.state})
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// ONBOARDING STATE
// =============================================================================

func TestLoadState_PersistsAcrossRunsUntilReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	saved := storage.State{Onboarding: model.OnboardingState{IntroShown: true, StudioNoticeShown: true}, Theme: "light"}
	require.NoError(t, storage.NewStateStore(path).Save(saved))

	// A later run sees the flags.
	st, err := loadState(storage.NewStateStore(path), false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, saved, st)
	assert.False(t, st.Onboarding.NeedsIntro())

	// --reset-onboarding clears them.
	st, err = loadState(storage.NewStateStore(path), true, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, storage.State{}, st)
	assert.True(t, st.Onboarding.NeedsIntro())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadState_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	st, err := loadState(storage.NewStateStore(path), false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, storage.State{}, st)
}
