// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"encoding/base64"
	"strings"
)

// EncodeDataURL builds "data:<mime>;base64,<payload>" from an already
// base64-encoded payload.
func EncodeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// DataURLFromBytes encodes raw bytes as a data URL.
func DataURLFromBytes(mime string, data []byte) string {
	return EncodeDataURL(mime, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURL splits a base64 data URL into its MIME type and decoded bytes.
// Any malformed input yields ErrInvalidRequest.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, invalidf("Invalid image data URL format.")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || payload == "" {
		return "", nil, invalidf("Invalid image data URL format.")
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, invalidf("Invalid image data URL format.")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, invalidf("Invalid image data URL format.")
	}
	return mime, data, nil
}
