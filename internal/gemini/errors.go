// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"fmt"
)

// Error variables for the gateway failure taxonomy.
var (
	// ErrConfiguration indicates the client cannot be built, e.g. no API key.
	ErrConfiguration = errors.New("gemini client not configured")

	// ErrInvalidRequest indicates a request rejected before any network call.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrGenerationFailed indicates the service answered without usable output.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUpstreamIncomplete indicates the service reported a non-normal completion.
	ErrUpstreamIncomplete = errors.New("upstream response incomplete")
)

// APIError wraps a failure returned by the SDK for one gateway operation.
type APIError struct {
	Op    string
	Model string
	Err   error
}

// Error implements the error interface. The underlying message is returned
// unchanged so it reads naturally in the chat transcript.
func (e *APIError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the SDK error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// ErrorKind is the coarse classification used in logs.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindInvalid       ErrorKind = "invalid_request"
	KindGeneration    ErrorKind = "generation_failed"
	KindIncomplete    ErrorKind = "upstream_incomplete"
	KindCanceled      ErrorKind = "canceled"
	KindUnknown       ErrorKind = "unknown"
)

// Kind classifies err. A nil error has no kind.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalid
	case errors.Is(err, ErrGenerationFailed):
		return KindGeneration
	case errors.Is(err, ErrUpstreamIncomplete):
		return KindIncomplete
	case isCanceled(err):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// invalidf builds an ErrInvalidRequest whose message is exactly the text given,
// since it is shown verbatim to the user.
func invalidf(format string, args ...any) error {
	return &requestError{kind: ErrInvalidRequest, msg: fmt.Sprintf(format, args...)}
}

// failedf builds an ErrGenerationFailed with a user-facing message.
func failedf(format string, args ...any) error {
	return &requestError{kind: ErrGenerationFailed, msg: fmt.Sprintf(format, args...)}
}

// incompletef builds an ErrUpstreamIncomplete with a user-facing message.
func incompletef(format string, args ...any) error {
	return &requestError{kind: ErrUpstreamIncomplete, msg: fmt.Sprintf(format, args...)}
}

// requestError carries a display message and a sentinel for errors.Is.
type requestError struct {
	kind error
	msg  string
}

func (e *requestError) Error() string        { return e.msg }
func (e *requestError) Is(target error) bool { return target == e.kind }
