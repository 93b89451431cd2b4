// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the dai packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - StringWidth: column width of a string (CJK and emoji count as 2)
//   - FirstLine: the first non-empty line of a block of text
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a file name into a status chip
//	label := util.TruncateWidth(name, 24)
//
//	// Persist state without risking a half-written file
//	err := util.AtomicWriteFile(path, data, 0600)
package util
