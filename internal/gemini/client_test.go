// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jeranaias/dai-tui/internal/model"
)

// =============================================================================
// FAKE SDK
// =============================================================================

type contentCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type imageCall struct {
	model  string
	prompt string
	config *genai.GenerateImagesConfig
}

type fakeModels struct {
	contentResp *genai.GenerateContentResponse
	contentErr  error
	imageResp   *genai.GenerateImagesResponse
	imageErr    error

	contentCalls []contentCall
	imageCalls   []imageCall
}

func (f *fakeModels) GenerateContent(_ context.Context, m string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contentCalls = append(f.contentCalls, contentCall{model: m, contents: contents, config: config})
	return f.contentResp, f.contentErr
}

func (f *fakeModels) GenerateImages(_ context.Context, m, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	f.imageCalls = append(f.imageCalls, imageCall{model: m, prompt: prompt, config: config})
	return f.imageResp, f.imageErr
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func newTestClient(f *fakeModels) *Client {
	return newClient(f, Options{APIKey: "test-key"})
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNew_MissingKey(t *testing.T) {
	_, err := New(context.Background(), Options{APIKey: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, KindConfiguration, Kind(err))
}

func TestNewClient_Defaults(t *testing.T) {
	c := newTestClient(&fakeModels{})
	chat, image, studio := c.Models()
	assert.Equal(t, DefaultChatModel, chat)
	assert.Equal(t, DefaultImageModel, image)
	assert.Equal(t, DefaultStudioModel, studio)
	assert.NotContains(t, c.fingerprint, "test-key")
}

// =============================================================================
// SEND TURN
// =============================================================================

func TestSendTurn_CarriesSystemInstructionAndHistory(t *testing.T) {
	f := &fakeModels{contentResp: textResponse("hello there")}
	c := newTestClient(f)

	sess, err := c.StartConversation(context.Background())
	require.NoError(t, err)

	reply, err := c.SendTurn(context.Background(), sess, "hi")
	require.NoError(t, err)
	assert.Equal(t, []RawPart{TextPart{Text: "hello there"}}, reply.Parts)
	assert.Equal(t, "STOP", reply.FinishReason)

	_, err = c.SendTurn(context.Background(), sess, "again")
	require.NoError(t, err)

	require.Len(t, f.contentCalls, 2)
	first, second := f.contentCalls[0], f.contentCalls[1]
	assert.Equal(t, DefaultChatModel, first.model)
	require.NotNil(t, first.config.SystemInstruction)
	assert.Contains(t, first.config.SystemInstruction.Parts[0].Text, ActionGenerateImage)
	assert.Len(t, first.contents, 1)
	// Second turn resends user, model, user.
	require.Len(t, second.contents, 3)
	assert.Equal(t, "hi", second.contents[0].Parts[0].Text)
	assert.Equal(t, "model", second.contents[1].Role)
	assert.Equal(t, "again", second.contents[2].Parts[0].Text)
	assert.Equal(t, 2, sess.Turns())
}

func TestSendTurn_FailureLeavesHistoryUntouched(t *testing.T) {
	f := &fakeModels{contentErr: errors.New("network down")}
	c := newTestClient(f)
	sess, _ := c.StartConversation(context.Background())

	_, err := c.SendTurn(context.Background(), sess, "hi")
	require.Error(t, err)
	assert.Equal(t, "network down", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "send_turn", apiErr.Op)
	assert.Equal(t, KindUnknown, Kind(err))
	assert.Equal(t, 0, sess.Turns())
}

func TestSendTurn_NilSession(t *testing.T) {
	c := newTestClient(&fakeModels{})
	_, err := c.SendTurn(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSendTurn_BlockedPrompt(t *testing.T) {
	f := &fakeModels{contentResp: &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
	}}
	c := newTestClient(f)
	sess, _ := c.StartConversation(context.Background())

	reply, err := c.SendTurn(context.Background(), sess, "something")
	require.NoError(t, err)
	assert.Empty(t, reply.Parts)
	assert.Equal(t, "SAFETY", reply.FinishReason)
}

func TestStartConversation_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(&fakeModels{}).StartConversation(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// GENERATE IMAGE
// =============================================================================

func TestGenerateImage_Success(t *testing.T) {
	f := &fakeModels{imageResp: &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: []byte{0, 0, 0}}}},
	}}
	c := newTestClient(f)

	url, err := c.GenerateImage(context.Background(), "  a red fox ")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", url)

	require.Len(t, f.imageCalls, 1)
	call := f.imageCalls[0]
	assert.Equal(t, "a red fox", call.prompt)
	assert.EqualValues(t, 1, call.config.NumberOfImages)
	assert.Equal(t, "1:1", call.config.AspectRatio)
	assert.Equal(t, "image/png", call.config.OutputMIMEType)
}

func TestGenerateImage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		resp    *genai.GenerateImagesResponse
		sdkErr  error
		wantErr error
		calls   int
	}{
		{name: "empty prompt", prompt: "   ", wantErr: ErrInvalidRequest, calls: 0},
		{name: "no images", prompt: "fox", resp: &genai.GenerateImagesResponse{}, wantErr: ErrGenerationFailed, calls: 1},
		{name: "nil response", prompt: "fox", wantErr: ErrGenerationFailed, calls: 1},
		{
			name:   "filtered",
			prompt: "fox",
			resp: &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
				{RAIFilteredReason: "safety"},
			}},
			wantErr: ErrUpstreamIncomplete,
			calls:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeModels{imageResp: tc.resp, imageErr: tc.sdkErr}
			_, err := newTestClient(f).GenerateImage(context.Background(), tc.prompt)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Len(t, f.imageCalls, tc.calls)
		})
	}
}

func TestGenerateImage_NoImagesMessage(t *testing.T) {
	f := &fakeModels{imageResp: &genai.GenerateImagesResponse{}}
	_, err := newTestClient(f).GenerateImage(context.Background(), "fox")
	require.Error(t, err)
	assert.Equal(t, "Image generation failed or returned no images.", err.Error())
}

// =============================================================================
// GENERATE OR EDIT
// =============================================================================

func TestGenerateOrEdit_ImageThenText(t *testing.T) {
	f := &fakeModels{contentResp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0, 0, 0}}},
				{Text: "done"},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}}
	c := newTestClient(f)

	upload := &model.UploadedFile{Data: "data:image/jpeg;base64,AAAA", MIMEType: "image/jpeg"}
	reply, err := c.GenerateOrEdit(context.Background(), "make it purple", upload)
	require.NoError(t, err)
	assert.Equal(t, []RawPart{
		InlineImagePart{MIMEType: "image/png", Data: "AAAA"},
		TextPart{Text: "done"},
	}, reply.Parts)

	require.Len(t, f.contentCalls, 1)
	call := f.contentCalls[0]
	assert.Equal(t, DefaultStudioModel, call.model)
	assert.Equal(t, []string{"IMAGE", "TEXT"}, call.config.ResponseModalities)
	parts := call.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte{0, 0, 0}, parts[0].InlineData.Data)
	assert.Equal(t, "make it purple", parts[1].Text)
}

func TestGenerateOrEdit_Validation(t *testing.T) {
	f := &fakeModels{}
	c := newTestClient(f)

	_, err := c.GenerateOrEdit(context.Background(), "  ", nil)
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "A prompt or an image is required to generate content.", err.Error())

	_, err = c.GenerateOrEdit(context.Background(), "x", &model.UploadedFile{Data: "not-a-data-url"})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "Invalid image data URL format.", err.Error())

	assert.Empty(t, f.contentCalls, "invalid requests must not reach the network")
}

func TestGenerateOrEdit_PromptOnly(t *testing.T) {
	f := &fakeModels{contentResp: textResponse("ok")}
	_, err := newTestClient(f).GenerateOrEdit(context.Background(), "a banana", nil)
	require.NoError(t, err)
	require.Len(t, f.contentCalls, 1)
	assert.Len(t, f.contentCalls[0].contents[0].Parts, 1)
}

func TestKind_Canceled(t *testing.T) {
	err := &APIError{Op: "send_turn", Err: context.Canceled}
	assert.Equal(t, KindCanceled, Kind(err))
	assert.Equal(t, ErrorKind(""), Kind(nil))
}
