// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the visible chat history to a file.
//
// Exports are one-way: nothing reads them back, so they are not a form of
// conversation persistence.
//
// # Key Types
//
//   - Transcript: the history plus the mode and model it came from
//   - Exporter: format implementations (Markdown, JSON)
//   - Options: output directory, timestamps, image handling
//
// # Usage
//
//	t := export.NewTranscript(orch.Mode(), modelName, orch.Messages())
//	path, err := export.ExportToFile(t, export.NewMarkdownExporter(opts), opts)
package export
