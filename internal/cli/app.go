// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/dai-tui/internal/config"
	"github.com/jeranaias/dai-tui/internal/conversation"
	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/logging"
	"github.com/jeranaias/dai-tui/internal/storage"
	"github.com/jeranaias/dai-tui/internal/ui/chat"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// TUI STARTUP
// =============================================================================

// runTUI loads the configuration, wires the gateway, orchestrator and chat
// model together and runs the Bubble Tea program until the user quits.
func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	if err := RequiresTTY("start the chat UI"); err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logFile.Close()
	logging.InitLogger(logFile, logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Pretty)
	log := logging.For("cli")
	log.Info().
		Str("event", "STARTUP").
		Str("version", Version).
		Str("mode", cfg.Mode().String()).
		Str("data_dir", cfg.DataDir()).
		Msg("starting")

	stateStore := storage.NewStateStore(cfg.StatePath())
	state, err := loadState(stateStore, opts.resetOnboarding, log)
	if err != nil {
		return err
	}

	theme := styles.NewTheme(themePreference(cfg, opts, state))

	var images *storage.ImageStore
	if cfg.Storage.SaveImages {
		images = storage.NewImageStore(cfg.ImagesDir())
	}

	client, err := gemini.New(ctx, gemini.Options{
		APIKey:      cfg.Gemini.APIKey,
		ChatModel:   cfg.Gemini.ChatModel,
		ImageModel:  cfg.Gemini.ImageModel,
		StudioModel: cfg.Gemini.StudioModel,
	})
	if err != nil {
		return err
	}

	conv, err := conversation.New(ctx, client, cfg.Mode())
	if err != nil {
		return err
	}
	defer conv.Close()

	m := chat.New(chat.Options{
		Conversation: conv,
		Theme:        theme,
		State:        stateStore,
		Onboarding:   state.Onboarding,
		SavedTheme:   state.Theme,
		Images:       images,
		ChatModel:    cfg.Gemini.ChatModel,
		StudioModel:  cfg.Gemini.StudioModel,
		WordWrap:     cfg.UI.WordWrap,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Str("event", "TUI_FAILED").Msg("program exited with error")
		return fmt.Errorf("TUI error: %w", err)
	}
	log.Info().Str("event", "SHUTDOWN").Msg("bye")
	return nil
}

// loadState reads the onboarding flags and chosen theme, which persist across
// runs. reset deletes them first so both popups show again.
func loadState(store *storage.StateStore, reset bool, log zerolog.Logger) (storage.State, error) {
	if reset {
		if err := store.Reset(); err != nil {
			return storage.State{}, err
		}
		log.Info().Str("event", "ONBOARDING_RESET").Msg("state file removed")
	}
	state, err := store.Load()
	if err != nil {
		// A corrupt state file only costs the popups; start fresh.
		log.Warn().Err(err).Str("event", "STATE_LOAD_FAILED").Msg("ignoring state file")
		return storage.State{}, nil
	}
	return state, nil
}

// themePreference picks the theme: --theme wins, then the last toggled theme,
// then the config file.
func themePreference(cfg *config.Config, opts *rootOptions, state storage.State) styles.Preference {
	if opts.theme != "" {
		return styles.ParsePreference(opts.theme)
	}
	if state.Theme != "" {
		return styles.ParsePreference(state.Theme)
	}
	return styles.ParsePreference(cfg.UI.Theme)
}
