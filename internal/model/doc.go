// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat history.
//
// This package defines the domain types shared by the gateway, the response
// normalizer, the conversation orchestrator and the UI.
//
// # Key Types
//
//   - Message: one turn in the history, an ordered list of parts from a single role
//   - MessagePart: a text fragment or an inline image (data URL)
//   - Mode: text chat or image studio
//   - UploadedFile: an image the user attached to the next studio turn
//   - OnboardingState: the two one-shot popup flags
//
// # Usage
//
//	msg := model.NewUserMessage(
//	    model.ImagePart(upload.Data),
//	    model.TextPart("make the sky purple"),
//	)
//	history = append(history, msg)
package model
