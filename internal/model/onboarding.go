// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// OnboardingState tracks the two one-shot popups. It is a plain value: the
// methods return the next state and the caller decides when to persist it.
type OnboardingState struct {
	IntroShown        bool `json:"intro_shown"`
	StudioNoticeShown bool `json:"studio_notice_shown"`
}

// NeedsIntro reports whether the intro popup should open at startup.
func (s OnboardingState) NeedsIntro() bool {
	return !s.IntroShown
}

// DismissIntro is the "Later" answer to the intro popup.
func (s OnboardingState) DismissIntro() OnboardingState {
	s.IntroShown = true
	return s
}

// TryStudio is the "Try now" answer. The studio notice is suppressed too since
// the user has just seen what the studio is.
func (s OnboardingState) TryStudio() OnboardingState {
	s.IntroShown = true
	s.StudioNoticeShown = true
	return s
}

// EnterMode records a switch to mode and reports whether the studio notice
// should be shown for it.
func (s OnboardingState) EnterMode(mode Mode) (OnboardingState, bool) {
	if mode != ModeStudio || s.StudioNoticeShown {
		return s, false
	}
	s.StudioNoticeShown = true
	return s, true
}
