// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
	"github.com/jeranaias/dai-tui/internal/util"
)

// AttachmentChip renders the pending upload above the input, e.g.
// " cat.png (image/png) " followed by a detach hint.
func AttachmentChip(theme *styles.Theme, file *model.UploadedFile, width int) string {
	if file == nil {
		return ""
	}
	hint := theme.ShortcutDesc.Render(" /detach to remove")
	label := util.TruncateWidth(file.Name, max(width-len(file.MIMEType)-24, 8)) + " (" + file.MIMEType + ")"
	return theme.AttachmentChip.Render(label) + hint
}
