// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the dai command line: a cobra root command that starts the
// chat TUI, plus the version and config subcommands.
//
// # Usage
//
//	os.Exit(cli.Execute())
//
// # Commands
//
//	dai [--config path] [--mode chat|studio] [--theme dark|light|auto]
//	    [--log-level lvl] [--reset-onboarding]
//	dai version
//	dai config init|path|show
//
// # Exit Codes
//
// Errors map to the exit codes in errors.go. A missing API key or an invalid
// config file exits with ExitConfigError (3) before the UI starts.
package cli
