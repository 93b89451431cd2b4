// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/jeranaias/dai-tui/internal/logging"
	"github.com/jeranaias/dai-tui/internal/model"
)

// Default model identifiers.
const (
	DefaultChatModel   = "gemini-2.5-flash"
	DefaultImageModel  = "imagen-4.0-generate-001"
	DefaultStudioModel = "gemini-2.5-flash-image-preview"
)

// ActionGenerateImage is the prefix the chat model emits when it wants an
// image generated. The remainder of the text is the image prompt.
const ActionGenerateImage = "[ACTION:GENERATE_IMAGE]"

// SystemInstruction is attached to every chat session.
const SystemInstruction = `You are D'Ai, a helpful multimodal assistant. If the user asks you to generate, create, or draw an image, you MUST respond with only the text "` + ActionGenerateImage + `" followed by a descriptive, stand-alone prompt that can be used to generate the image. For example, if the user says 'Can you draw me a picture of a robot holding a red skateboard?', you must respond with "` + ActionGenerateImage + ` A robot holding a red skateboard.". For all other requests, respond as a normal, helpful assistant.`

// Image generation settings. Square PNG, one image per request.
const (
	imageCount       = 1
	imageAspectRatio = "1:1"
	imageMIMEType    = "image/png"
)

// modelsAPI is the part of *genai.Models the gateway uses.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Options configures a Client. Empty model names fall back to the defaults.
type Options struct {
	APIKey      string
	ChatModel   string
	ImageModel  string
	StudioModel string
}

func (o *Options) fillDefaults() {
	if o.ChatModel == "" {
		o.ChatModel = DefaultChatModel
	}
	if o.ImageModel == "" {
		o.ImageModel = DefaultImageModel
	}
	if o.StudioModel == "" {
		o.StudioModel = DefaultStudioModel
	}
}

// Client is the model gateway. It is safe for concurrent use.
type Client struct {
	models      modelsAPI
	chatModel   string
	imageModel  string
	studioModel string
	fingerprint string
	log         zerolog.Logger
}

// New builds a Client backed by the Gemini API. A missing key is a
// configuration error; callers treat it as fatal.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: API key is empty", ErrConfiguration)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return newClient(gc.Models, opts), nil
}

func newClient(api modelsAPI, opts Options) *Client {
	opts.fillDefaults()
	c := &Client{
		models:      api,
		chatModel:   opts.ChatModel,
		imageModel:  opts.ImageModel,
		studioModel: opts.StudioModel,
		fingerprint: keyFingerprint(opts.APIKey),
		log:         logging.For("gemini"),
	}
	c.log.Info().
		Str("chat_model", c.chatModel).
		Str("image_model", c.imageModel).
		Str("studio_model", c.studioModel).
		Str("key", c.fingerprint).
		Msg("GATEWAY_INIT")
	return c
}

// keyFingerprint identifies a key in logs without revealing any of it.
func keyFingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", h[:4])
}

// Models returns the configured chat, image and studio model names.
func (c *Client) Models() (chat, image, studio string) {
	return c.chatModel, c.imageModel, c.studioModel
}

// =============================================================================
// SESSIONS
// =============================================================================

// Session is a text chat conversation. The history lives client side and is
// resent with every turn.
type Session struct {
	mu      sync.Mutex
	model   string
	config  *genai.GenerateContentConfig
	history []*genai.Content
}

// Turns returns the number of completed exchanges.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) / 2
}

// StartConversation creates a session primed with SystemInstruction. No
// request is made.
func (c *Client) StartConversation(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.log.Debug().Str("model", c.chatModel).Msg("SESSION_START")
	return &Session{
		model: c.chatModel,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		},
	}, nil
}

// SendTurn sends one user text turn on sess. The session history only grows
// when the call succeeds.
func (c *Client) SendTurn(ctx context.Context, sess *Session, text string) (Reply, error) {
	if sess == nil {
		return Reply{}, invalidf("chat session is not initialized")
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	user := genai.NewContentFromText(text, genai.RoleUser)
	contents := make([]*genai.Content, 0, len(sess.history)+1)
	contents = append(contents, sess.history...)
	contents = append(contents, user)

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, sess.model, contents, sess.config)
	if err != nil {
		return Reply{}, c.fail("send_turn", sess.model, start, err)
	}

	reply := replyFromResponse(resp)
	sess.history = append(sess.history, user)
	if cand := firstCandidate(resp); cand != nil && cand.Content != nil {
		content := cand.Content
		if content.Role == "" {
			content.Role = string(genai.RoleModel)
		}
		sess.history = append(sess.history, content)
	}
	c.logOK("send_turn", sess.model, start, reply)
	return reply, nil
}

// =============================================================================
// IMAGES
// =============================================================================

// GenerateImage renders prompt with the image model and returns one PNG as a
// data URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", invalidf("An image prompt is required.")
	}

	start := time.Now()
	resp, err := c.models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: imageCount,
		AspectRatio:    imageAspectRatio,
		OutputMIMEType: imageMIMEType,
	})
	if err != nil {
		return "", c.fail("generate_image", c.imageModel, start, err)
	}

	var filtered string
	if resp != nil {
		for _, gi := range resp.GeneratedImages {
			if gi == nil {
				continue
			}
			if gi.Image != nil && len(gi.Image.ImageBytes) > 0 {
				mime := gi.Image.MIMEType
				if mime == "" {
					mime = imageMIMEType
				}
				c.log.Info().
					Str("op", "generate_image").
					Str("model", c.imageModel).
					Dur("duration", time.Since(start)).
					Int("bytes", len(gi.Image.ImageBytes)).
					Msg("API_OK")
				return DataURLFromBytes(mime, gi.Image.ImageBytes), nil
			}
			if gi.RAIFilteredReason != "" {
				filtered = gi.RAIFilteredReason
			}
		}
	}

	if filtered != "" {
		err = incompletef("Image generation was blocked: %s", filtered)
	} else {
		err = failedf("Image generation failed or returned no images.")
	}
	c.logFailure("generate_image", c.imageModel, start, err)
	return "", err
}

// GenerateOrEdit sends an optional input image followed by an optional prompt
// to the studio model, asking for mixed image and text output. At least one
// of the two is required.
func (c *Client) GenerateOrEdit(ctx context.Context, prompt string, image *model.UploadedFile) (Reply, error) {
	parts := make([]*genai.Part, 0, 2)
	if image != nil {
		mime, data, err := ParseDataURL(image.Data)
		if err != nil {
			return Reply{}, err
		}
		if image.MIMEType != "" {
			mime = image.MIMEType
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}})
	}
	if strings.TrimSpace(prompt) != "" {
		parts = append(parts, genai.NewPartFromText(prompt))
	}
	if len(parts) == 0 {
		return Reply{}, invalidf("A prompt or an image is required to generate content.")
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.studioModel, contents, config)
	if err != nil {
		return Reply{}, c.fail("generate_or_edit", c.studioModel, start, err)
	}
	reply := replyFromResponse(resp)
	c.logOK("generate_or_edit", c.studioModel, start, reply)
	return reply, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func firstCandidate(resp *genai.GenerateContentResponse) *genai.Candidate {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	return resp.Candidates[0]
}

// fail wraps an SDK error and logs it.
func (c *Client) fail(op, modelName string, start time.Time, err error) error {
	wrapped := &APIError{Op: op, Model: modelName, Err: err}
	c.logFailure(op, modelName, start, wrapped)
	return wrapped
}

func (c *Client) logFailure(op, modelName string, start time.Time, err error) {
	c.log.Warn().
		Str("op", op).
		Str("model", modelName).
		Dur("duration", time.Since(start)).
		Str("kind", string(Kind(err))).
		Err(err).
		Msg("API_ERROR")
}

func (c *Client) logOK(op, modelName string, start time.Time, r Reply) {
	c.log.Info().
		Str("op", op).
		Str("model", modelName).
		Dur("duration", time.Since(start)).
		Int("parts", len(r.Parts)).
		Str("finish", r.FinishReason).
		Msg("API_OK")
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
