// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini is the model gateway: a thin wrapper over the hosted Gemini
// text model, the Imagen image model and the Gemini image editing model.
//
// The gateway exposes four operations and nothing else:
//
//   - StartConversation: a local multi-turn session carrying the system instruction
//   - SendTurn: one user text turn on a session, raw parts returned unprocessed
//   - GenerateImage: exactly one square PNG from a prompt, as a data URL
//   - GenerateOrEdit: a prompt and/or input image sent to the editing model
//
// Raw response parts are translated into the closed RawPart union (TextPart,
// InlineImagePart, StructuredPart, UnrecognizedPart). Turning them into
// displayable parts is the job of package content.
//
// # Errors
//
// Failures are classified with the sentinel errors in errors.go:
// ErrConfiguration, ErrInvalidRequest, ErrGenerationFailed and
// ErrUpstreamIncomplete. Anything the SDK returns is wrapped in *APIError and
// counts as an unknown failure. There are no retries and no client-side
// timeouts; cancellation comes only from the caller's context.
//
// # Usage
//
//	client, err := gemini.New(ctx, gemini.Options{APIKey: key})
//	sess, _ := client.StartConversation(ctx)
//	reply, err := client.SendTurn(ctx, sess, "draw me a fox")
package gemini
