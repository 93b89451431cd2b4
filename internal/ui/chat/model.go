// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/dai-tui/internal/conversation"
	"github.com/jeranaias/dai-tui/internal/logging"
	"github.com/jeranaias/dai-tui/internal/model"
	"github.com/jeranaias/dai-tui/internal/storage"
	"github.com/jeranaias/dai-tui/internal/ui/components"
	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// maxInputRows is how far the input grows before it scrolls.
const maxInputRows = 6

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires the chat model to the rest of the application.
type Options struct {
	// Conversation is required.
	Conversation *conversation.Orchestrator
	Theme        *styles.Theme

	// State persists onboarding flags and the theme. Nil disables persistence.
	State      *storage.StateStore
	Onboarding model.OnboardingState
	// SavedTheme is the theme last chosen with /theme, empty if never.
	SavedTheme string

	// Images stores rendered images. Nil shows image references without files.
	Images *storage.ImageStore

	// Model names shown in the header per mode.
	ChatModel   string
	StudioModel string

	// WordWrap caps the message text width. 0 follows the terminal.
	WordWrap int

	// ExportDir is the default /export directory.
	ExportDir string

	// Clipboard writes text to the system clipboard. Default: atotto/clipboard.
	Clipboard func(string) error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	conv  *conversation.Orchestrator
	theme *styles.Theme
	keys  KeyMap
	log   zerolog.Logger

	// Widgets
	header   *components.Header
	renderer *components.MessageRenderer
	thinking components.ThinkingIndicator
	viewport viewport.Model
	input    textarea.Model

	// Rendered messages by ID, valid for renderKey.
	rendered  map[string]string
	renderKey string

	// Onboarding
	popup      components.Popup
	onboarding model.OnboardingState
	stateStore *storage.StateStore
	savedTheme string

	attachment *model.UploadedFile
	images     *storage.ImageStore

	status    string
	statusErr bool
	showHelp  bool

	chatModel   string
	studioModel string
	exportDir   string
	clipboard   func(string) error

	width  int
	height int
	ready  bool

	// stateDirty marks onboarding changes made in New that still need saving.
	stateDirty bool
}

// New creates the chat model. The intro popup opens when onboarding has not
// been completed.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.PreferAuto)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	var saver components.ImageSaver
	if opts.Images != nil {
		saver = opts.Images
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline = DefaultKeyMap().Newline
	ta.Focus()

	m := Model{
		conv:        opts.Conversation,
		theme:       theme,
		keys:        DefaultKeyMap(),
		log:         logging.For("ui"),
		header:      components.NewHeader(theme),
		renderer:    components.NewMessageRenderer(theme, saver),
		thinking:    components.NewThinkingIndicator(theme),
		viewport:    viewport.New(80, 20),
		input:       ta,
		rendered:    make(map[string]string),
		onboarding:  opts.Onboarding,
		stateStore:  opts.State,
		savedTheme:  opts.SavedTheme,
		images:      opts.Images,
		chatModel:   opts.ChatModel,
		studioModel: opts.StudioModel,
		exportDir:   exportDir,
		clipboard:   clip,
		width:       80,
		height:      24,
	}
	m.renderer.SetWrapCap(opts.WordWrap)
	m.syncMode()

	if m.onboarding.NeedsIntro() {
		m.popup = components.IntroPopup()
	} else {
		var show bool
		m.onboarding, show = m.onboarding.EnterMode(m.conv.Mode())
		if show {
			m.popup = components.StudioNoticePopup()
			m.stateDirty = true
		}
	}
	return m
}

// Init starts the cursor blink and saves onboarding changes made by New.
func (m Model) Init() tea.Cmd {
	if m.stateDirty {
		return tea.Batch(textarea.Blink, m.saveState())
	}
	return textarea.Blink
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the orchestrator.
func (m Model) Conversation() *conversation.Orchestrator { return m.conv }

// Popup returns the open popup, if any.
func (m Model) Popup() components.Popup { return m.popup }

// Onboarding returns the current onboarding flags.
func (m Model) Onboarding() model.OnboardingState { return m.onboarding }

// Attachment returns the pending upload.
func (m Model) Attachment() *model.UploadedFile { return m.attachment }

// Status returns the status line text and whether it is an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme { return m.theme }

// InputValue returns the current input text.
func (m Model) InputValue() string { return m.input.Value() }

// =============================================================================
// STATE HELPERS
// =============================================================================

func (m *Model) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

// modelName is the model behind the active mode.
func (m *Model) modelName() string {
	if m.conv.Mode() == model.ModeStudio {
		return m.studioModel
	}
	return m.chatModel
}

// syncMode updates everything that depends on the mode.
func (m *Model) syncMode() {
	mode := m.conv.Mode()
	m.header.SetMode(mode, m.modelName())
	m.input.Placeholder = mode.Placeholder()
	if !mode.AllowsAttachments() {
		m.attachment = nil
	}
}

// switchMode changes mode and opens the studio notice the first time the
// studio is entered.
func (m *Model) switchMode(mode model.Mode, withNotice bool) tea.Cmd {
	if mode == m.conv.Mode() {
		return nil
	}
	m.thinking.Stop()
	m.showHelp = false
	if err := m.conv.SwitchMode(mode); err != nil {
		m.setError(err)
	} else {
		m.clearStatus()
	}
	m.syncMode()
	m.refresh(true)

	if !withNotice {
		return nil
	}
	next, show := m.onboarding.EnterMode(mode)
	if !show {
		return nil
	}
	m.onboarding = next
	m.popup = components.StudioNoticePopup()
	return m.saveState()
}

// clearConversation resets the history of the current mode.
func (m *Model) clearConversation() {
	m.thinking.Stop()
	m.showHelp = false
	if err := m.conv.Clear(); err != nil {
		m.setError(err)
	} else {
		m.clearStatus()
	}
	m.refresh(true)
}

// saveState persists onboarding flags and the chosen theme off the event loop.
func (m *Model) saveState() tea.Cmd {
	if m.stateStore == nil {
		return nil
	}
	store := m.stateStore
	st := storage.State{Onboarding: m.onboarding, Theme: m.savedTheme}
	return func() tea.Msg {
		return StateSavedMsg{Err: store.Save(st)}
	}
}

// thinkingMessage is the indicator text for the current request state.
func (m *Model) thinkingMessage() string {
	switch m.conv.State() {
	case conversation.AwaitingSecondaryImageResponse:
		return "Generating image"
	case conversation.AwaitingPrimaryResponse:
		if m.conv.Mode() == model.ModeStudio {
			return "Painting"
		}
	}
	return "Thinking"
}

// errRequiresStudio is shown for /attach in chat mode.
var errRequiresStudio = errors.New("attachments are only available in D'Ai - Paint (ctrl+t to switch)")
