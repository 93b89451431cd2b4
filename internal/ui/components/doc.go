// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the dai TUI.
//
// Components are plain values with a View (or Render) method. They do not
// own conversation state; the chat model hands them what to draw.
//
//   - Header: mode title, theme and key hints
//   - MessageRenderer: user and model bubbles with markdown, code and images
//   - CodeBlock: chroma-highlighted fenced code
//   - Spinner / ThinkingIndicator: busy feedback
//   - Popup: centred overlay for onboarding notices
//   - AttachmentChip: the pending studio upload
package components
