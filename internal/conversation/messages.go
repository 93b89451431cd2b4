// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import "github.com/jeranaias/dai-tui/internal/model"

// =============================================================================
// REQUEST RESULT MESSAGES
// =============================================================================

// PrimaryReplyMsg carries the normalized reply to a submitted turn.
type PrimaryReplyMsg struct {
	Gen   uint64
	Mode  model.Mode
	Parts []model.MessagePart
}

// ImageReplyMsg carries the image generated after an action marker.
type ImageReplyMsg struct {
	Gen     uint64
	DataURL string
}

// RequestFailedMsg reports a failed gateway call in either await state.
type RequestFailedMsg struct {
	Gen uint64
	Err error
}
