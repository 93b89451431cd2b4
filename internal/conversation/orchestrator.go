// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/dai-tui/internal/content"
	"github.com/jeranaias/dai-tui/internal/gemini"
	"github.com/jeranaias/dai-tui/internal/logging"
	"github.com/jeranaias/dai-tui/internal/model"
)

// ActionMarker prefixes a chat reply that asks for an image.
const ActionMarker = gemini.ActionGenerateImage

// Gateway is the subset of the model gateway the orchestrator drives.
// *gemini.Client implements it.
type Gateway interface {
	StartConversation(ctx context.Context) (*gemini.Session, error)
	SendTurn(ctx context.Context, sess *gemini.Session, text string) (gemini.Reply, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	GenerateOrEdit(ctx context.Context, prompt string, image *model.UploadedFile) (gemini.Reply, error)
}

// =============================================================================
// STATE
// =============================================================================

// State is the request state.
type State int

const (
	Idle State = iota
	AwaitingPrimaryResponse
	AwaitingSecondaryImageResponse
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingPrimaryResponse:
		return "awaiting_primary"
	case AwaitingSecondaryImageResponse:
		return "awaiting_image"
	default:
		return "unknown"
	}
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator is the single owner of the message list and busy state. It is
// not safe for concurrent use; call it only from the Update loop.
type Orchestrator struct {
	gw   Gateway
	base context.Context
	log  zerolog.Logger

	mode     model.Mode
	state    State
	messages []model.Message
	session  *gemini.Session
	err      error

	gen    uint64
	reqCtx context.Context
	cancel context.CancelFunc
}

// New seeds the history for mode and, in text chat, starts a session. ctx
// bounds every request the orchestrator makes.
func New(ctx context.Context, gw Gateway, mode model.Mode) (*Orchestrator, error) {
	o := &Orchestrator{
		gw:   gw,
		base: ctx,
		log:  logging.For("conversation"),
		mode: mode,
	}
	if err := o.reset(); err != nil {
		return nil, err
	}
	return o, nil
}

// Mode returns the active mode.
func (o *Orchestrator) Mode() model.Mode { return o.mode }

// State returns the request state.
func (o *Orchestrator) State() State { return o.state }

// Busy reports whether a request is outstanding.
func (o *Orchestrator) Busy() bool { return o.state != Idle }

// Err returns the error of the last failed request, if not yet dismissed.
func (o *Orchestrator) Err() error { return o.err }

// DismissError clears the recorded error.
func (o *Orchestrator) DismissError() { o.err = nil }

// Generation returns the current generation id.
func (o *Orchestrator) Generation() uint64 { return o.gen }

// Messages returns a copy of the history.
func (o *Orchestrator) Messages() []model.Message {
	out := make([]model.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// Len returns the number of messages in the history.
func (o *Orchestrator) Len() int { return len(o.messages) }

// Submit starts a turn. It returns nil, leaving everything untouched, when
// there is nothing to send or a request is already outstanding. In text chat
// the file is ignored since the chat model only takes text. Blank text counts
// as no text; otherwise the text is sent exactly as typed.
func (o *Orchestrator) Submit(text string, file *model.UploadedFile) tea.Cmd {
	hasText := strings.TrimSpace(text) != ""
	if !hasText {
		text = ""
	}
	if o.mode != model.ModeStudio {
		file = nil
	}
	if !hasText && file == nil {
		return nil
	}
	if o.state != Idle {
		o.log.Debug().Str("state", o.state.String()).Msg("SUBMIT_REJECTED")
		return nil
	}

	parts := make([]model.MessagePart, 0, 2)
	if file != nil {
		parts = append(parts, model.ImagePart(file.Data))
	}
	if hasText {
		parts = append(parts, model.TextPart(text))
	}
	o.messages = append(o.messages, model.NewUserMessage(parts...))
	o.state = AwaitingPrimaryResponse
	o.err = nil

	ctx := o.requestContext()
	gen, gw := o.gen, o.gw
	o.log.Info().
		Str("mode", o.mode.String()).
		Uint64("gen", gen).
		Bool("image", file != nil).
		Int("chars", len(text)).
		Msg("SUBMIT")

	if o.mode == model.ModeStudio {
		return func() tea.Msg {
			reply, err := gw.GenerateOrEdit(ctx, text, file)
			if err != nil {
				return RequestFailedMsg{Gen: gen, Err: err}
			}
			return PrimaryReplyMsg{
				Gen:   gen,
				Mode:  model.ModeStudio,
				Parts: content.NormalizeWith(reply.Parts, reply.FinishReason, content.StudioNotices),
			}
		}
	}

	sess := o.session
	return func() tea.Msg {
		reply, err := gw.SendTurn(ctx, sess, text)
		if err != nil {
			return RequestFailedMsg{Gen: gen, Err: err}
		}
		return PrimaryReplyMsg{
			Gen:   gen,
			Mode:  model.ModeChat,
			Parts: content.Normalize(reply.Parts, reply.FinishReason),
		}
	}
}

// Update applies a request result. Messages that are not request results, or
// that belong to an older generation, are ignored.
func (o *Orchestrator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PrimaryReplyMsg:
		if o.stale(msg.Gen, "primary") || o.state != AwaitingPrimaryResponse {
			return nil
		}
		return o.handlePrimary(msg)

	case ImageReplyMsg:
		if o.stale(msg.Gen, "image") || o.state != AwaitingSecondaryImageResponse {
			return nil
		}
		o.messages = append(o.messages, model.NewModelMessage(model.ImagePart(msg.DataURL)))
		o.finish()
		return nil

	case RequestFailedMsg:
		if o.stale(msg.Gen, "failure") || o.state == Idle {
			return nil
		}
		o.log.Warn().
			Str("state", o.state.String()).
			Str("kind", string(gemini.Kind(msg.Err))).
			Err(msg.Err).
			Msg("REQUEST_FAILED")
		o.messages = append(o.messages, model.NewErrorMessage(ErrorText(msg.Err)))
		o.err = msg.Err
		o.finish()
		return nil
	}
	return nil
}

func (o *Orchestrator) handlePrimary(msg PrimaryReplyMsg) tea.Cmd {
	if msg.Mode == model.ModeChat {
		text := strings.TrimSpace(content.JoinText(msg.Parts))
		if strings.HasPrefix(text, ActionMarker) {
			prompt := strings.TrimSpace(strings.TrimPrefix(text, ActionMarker))
			o.messages = append(o.messages, model.NewModelMessage(model.TextPart(ConfirmationText(prompt))))
			o.state = AwaitingSecondaryImageResponse
			o.log.Info().Uint64("gen", msg.Gen).Msg("ACTION_GENERATE_IMAGE")

			ctx, gen, gw := o.requestContext(), o.gen, o.gw
			return func() tea.Msg {
				url, err := gw.GenerateImage(ctx, prompt)
				if err != nil {
					return RequestFailedMsg{Gen: gen, Err: err}
				}
				return ImageReplyMsg{Gen: gen, DataURL: url}
			}
		}
	}
	o.messages = append(o.messages, model.NewModelMessage(msg.Parts...))
	o.finish()
	return nil
}

// Clear resets the history to the welcome message. In text chat a fresh
// session replaces the old one.
func (o *Orchestrator) Clear() error {
	o.log.Info().Str("mode", o.mode.String()).Str("state", o.state.String()).Msg("CLEAR")
	return o.reset()
}

// SwitchMode moves to mode, discarding the current history and session.
// Switching to the active mode does nothing.
func (o *Orchestrator) SwitchMode(mode model.Mode) error {
	if mode == o.mode {
		return nil
	}
	o.log.Info().Str("from", o.mode.String()).Str("to", mode.String()).Msg("MODE_SWITCH")
	o.mode = mode
	return o.reset()
}

// Close cancels any outstanding request.
func (o *Orchestrator) Close() {
	o.abandon()
}

// reset cancels the in-flight request, advances the generation and reseeds
// the history for the current mode.
func (o *Orchestrator) reset() error {
	o.abandon()
	o.gen++
	o.state = Idle
	o.err = nil
	o.session = nil
	o.messages = []model.Message{model.WelcomeMessage(o.mode)}

	if o.mode != model.ModeChat {
		return nil
	}
	sess, err := o.gw.StartConversation(o.base)
	if err != nil {
		return fmt.Errorf("start conversation: %w", err)
	}
	o.session = sess
	return nil
}

// requestContext returns the context for the request being dispatched,
// reusing the current one across the primary and secondary calls of a turn.
func (o *Orchestrator) requestContext() context.Context {
	if o.cancel == nil {
		ctx, cancel := context.WithCancel(o.base)
		o.reqCtx, o.cancel = ctx, cancel
	}
	return o.reqCtx
}

func (o *Orchestrator) abandon() {
	if o.cancel != nil {
		o.cancel()
	}
	o.reqCtx, o.cancel = nil, nil
}

func (o *Orchestrator) finish() {
	o.state = Idle
	o.abandon()
}

func (o *Orchestrator) stale(gen uint64, kind string) bool {
	if gen == o.gen {
		return false
	}
	o.log.Debug().Uint64("gen", gen).Uint64("current", o.gen).Str("result", kind).Msg("STALE_RESULT_DISCARDED")
	return true
}

// ConfirmationText is the message appended before an image is generated.
func ConfirmationText(prompt string) string {
	return "OK, using Imagen to generate: *" + prompt + "*"
}

// ErrorText is the message appended when a request fails.
func ErrorText(err error) string {
	return "Sorry, something went wrong: " + err.Error()
}
