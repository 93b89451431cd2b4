// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/dai-tui/internal/model"

// =============================================================================
// UI MESSAGES
// =============================================================================

// Request results are conversation.PrimaryReplyMsg, ImageReplyMsg and
// RequestFailedMsg; these are the UI's own background results.

// AttachmentLoadedMsg carries a file read by /attach.
type AttachmentLoadedMsg struct {
	File *model.UploadedFile
	Err  error
}

// ExportDoneMsg reports the result of /export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// StateSavedMsg reports the result of persisting UI state.
type StateSavedMsg struct {
	Err error
}
