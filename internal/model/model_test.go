// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_IDs(t *testing.T) {
	a := NewUserMessage(TextPart("hi"))
	b := NewUserMessage(TextPart("hi"))

	if !strings.HasPrefix(a.ID, "user-") {
		t.Errorf("user message ID = %q, want user- prefix", a.ID)
	}
	if a.ID == b.ID {
		t.Error("message IDs must be unique")
	}
	if got := NewErrorMessage("x").ID; !strings.HasPrefix(got, "error-") {
		t.Errorf("error message ID = %q", got)
	}
	if NewErrorMessage("x").Role != RoleModel {
		t.Error("error messages are model turns")
	}
	if !NewErrorMessage("x").IsError() || a.IsError() {
		t.Error("IsError should only match error messages")
	}
}

func TestMessage_TextAndImages(t *testing.T) {
	m := NewModelMessage(
		TextPart("here you go: "),
		ImagePart("data:image/png;base64,AAAA"),
		TextPart("enjoy"),
	)

	if got := m.Text(); got != "here you go: enjoy" {
		t.Errorf("Text() = %q", got)
	}
	imgs := m.Images()
	if len(imgs) != 1 || imgs[0] != "data:image/png;base64,AAAA" {
		t.Errorf("Images() = %v", imgs)
	}
}

func TestIsAcceptedImageType(t *testing.T) {
	for _, mime := range []string{"image/png", "image/jpeg", "image/webp"} {
		if !IsAcceptedImageType(mime) {
			t.Errorf("%s should be accepted", mime)
		}
	}
	for _, mime := range []string{"image/gif", "application/pdf", ""} {
		if IsAcceptedImageType(mime) {
			t.Errorf("%q should be rejected", mime)
		}
	}
}

// =============================================================================
// MODE TESTS
// =============================================================================

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"text", ModeChat, false},
		{"chat", ModeChat, false},
		{" Studio ", ModeStudio, false},
		{"image", ModeStudio, false},
		{"paint", ModeStudio, false},
		{"video", "", true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMode_Presentation(t *testing.T) {
	if ModeChat.DisplayName() != "D'Ai - 2.5" {
		t.Errorf("chat display name = %q", ModeChat.DisplayName())
	}
	if ModeStudio.DisplayName() != "D'Ai - Paint 🍌" {
		t.Errorf("studio display name = %q", ModeStudio.DisplayName())
	}
	if ModeChat.Toggle() != ModeStudio || ModeStudio.Toggle() != ModeChat {
		t.Error("Toggle should alternate")
	}
	if ModeChat.AllowsAttachments() || !ModeStudio.AllowsAttachments() {
		t.Error("only the studio accepts attachments")
	}
}

func TestWelcomeMessage(t *testing.T) {
	chat := WelcomeMessage(ModeChat)
	studio := WelcomeMessage(ModeStudio)

	if chat.ID != WelcomeChatID || studio.ID != WelcomeStudioID {
		t.Errorf("welcome IDs = %q, %q", chat.ID, studio.ID)
	}
	if !chat.IsWelcome() || !studio.IsWelcome() {
		t.Error("IsWelcome should be true for sentinels")
	}
	if !strings.Contains(studio.Text(), "D'Ai - Paint") {
		t.Errorf("studio welcome text = %q", studio.Text())
	}
	if chat.Role != RoleModel {
		t.Error("welcome messages are model turns")
	}
}

// =============================================================================
// ONBOARDING TESTS
// =============================================================================

func TestOnboarding_FirstStudioVisitShowsNoticeOnce(t *testing.T) {
	var s OnboardingState

	s, show := s.EnterMode(ModeChat)
	if show {
		t.Error("chat mode never shows the studio notice")
	}
	s, show = s.EnterMode(ModeStudio)
	if !show {
		t.Error("first studio visit should show the notice")
	}
	_, show = s.EnterMode(ModeStudio)
	if show {
		t.Error("second studio visit should not show the notice")
	}
}

func TestOnboarding_TryStudioSuppressesNotice(t *testing.T) {
	s := OnboardingState{}
	if !s.NeedsIntro() {
		t.Fatal("fresh state needs the intro")
	}
	s = s.TryStudio()
	if s.NeedsIntro() {
		t.Error("intro should be marked shown")
	}
	if _, show := s.EnterMode(ModeStudio); show {
		t.Error("studio notice should be suppressed after Try now")
	}
}

func TestOnboarding_DismissIntroKeepsNotice(t *testing.T) {
	s := OnboardingState{}.DismissIntro()
	if s.NeedsIntro() {
		t.Error("intro should be marked shown")
	}
	if _, show := s.EnterMode(ModeStudio); !show {
		t.Error("studio notice should still appear after Later")
	}
}
