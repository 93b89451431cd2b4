// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/dai-tui/internal/model"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath      string
	mode            string
	theme           string
	logLevel        string
	resetOnboarding bool
}

// NewRootCmd builds the dai command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dai",
		Short: "D'Ai - chat and image studio for Gemini in your terminal",
		Long: "dai is a terminal client for Google's hosted Gemini models.\n\n" +
			"Chat mode talks to the conversational model and can generate images on request.\n" +
			"Paint mode creates and edits images with the Nano Banana model.\n\n" +
			"Set GEMINI_API_KEY before starting.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.dai/config.toml)")
	root.Flags().StringVarP(&opts.mode, "mode", "m", "", "startup mode: chat or studio")
	root.Flags().StringVar(&opts.theme, "theme", "", "color theme: dark, light or auto")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or off")
	root.Flags().BoolVar(&opts.resetOnboarding, "reset-onboarding", false, "show the intro popups again")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd(opts))
	return root
}

// validate checks flag values before anything is loaded.
func (o *rootOptions) validate() error {
	if o.mode != "" {
		if _, err := model.ParseMode(o.mode); err != nil {
			return NewValidationErrorWithExample("--mode", o.mode, "unknown mode", "dai --mode studio")
		}
	}
	switch strings.ToLower(o.theme) {
	case "", "dark", "light", "auto":
	default:
		return NewValidationErrorWithExample("--theme", o.theme, "unknown theme", "dai --theme light")
	}
	switch strings.ToLower(o.logLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "off":
	default:
		return NewValidationErrorWithExample("--log-level", o.logLevel, "unknown level", "dai --log-level debug")
	}
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		DisplayError(stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
