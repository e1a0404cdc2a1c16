package external

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/valueobjects"
)

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	deadline bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newPreparedRequest(t *testing.T, styling string) *entities.TryOnRequest {
	person, err := valueobjects.NewImageData(pngBytes(t, 3, 3))
	require.NoError(t, err)
	garment, err := valueobjects.NewImageData(pngBytes(t, 5, 5))
	require.NoError(t, err)
	params, err := valueobjects.NewTryOnParameters(styling, 95)
	require.NoError(t, err)

	request, err := entities.NewTryOnRequest("", person, garment, params)
	require.NoError(t, err)
	require.NoError(t, request.PrepareImages())
	return request
}

func TestBuildContents_Order(t *testing.T) {
	request := newPreparedRequest(t, "cropped")

	contents, err := BuildContents(request)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	content := contents[0]
	assert.Equal(t, "user", string(content.Role))
	require.Len(t, content.Parts, 3)

	assert.Equal(t, request.Prompt(), content.Parts[0].Text)
	assert.Contains(t, content.Parts[0].Text, "Extra styling instructions: cropped")
	assert.Nil(t, content.Parts[0].InlineData)

	require.NotNil(t, content.Parts[1].InlineData)
	assert.Equal(t, "image/png", content.Parts[1].InlineData.MIMEType)
	assert.Equal(t, request.PersonImage().Data(), content.Parts[1].InlineData.Data)

	require.NotNil(t, content.Parts[2].InlineData)
	assert.Equal(t, "image/png", content.Parts[2].InlineData.MIMEType)
	assert.Equal(t, request.GarmentImage().Data(), content.Parts[2].InlineData.Data)
}

func TestGeminiTryOnService_GenerateTryOn(t *testing.T) {
	t.Run("returns the first inline image", func(t *testing.T) {
		payload := pngBytes(t, 7, 7)
		models := &fakeModels{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
				genai.NewPartFromText("done"),
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: payload}},
			}}}},
		}}
		service := NewGeminiTryOnService(models, "gemini-test-image", 0, nil)
		request := newPreparedRequest(t, "")

		result, err := service.GenerateTryOn(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, "gemini-test-image", models.model)
		assert.False(t, models.deadline)
		assert.Equal(t, request.ID(), result.RequestID())
		assert.Equal(t, payload, result.Image().Data())
		assert.Equal(t, "gemini-test-image", result.Model())
		assert.Equal(t, "done", result.Text())
	})

	t.Run("logs the resolved garment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "red_dress.png")
		require.NoError(t, os.WriteFile(path, pngBytes(t, 2, 2), 0o644))
		garment, err := entities.NewGarmentAsset(path)
		require.NoError(t, err)

		request := newPreparedRequest(t, "")
		request.SetGarment(garment)

		var logs bytes.Buffer
		models := &fakeModels{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes(t, 2, 2)}},
			}}}},
		}}
		service := NewGeminiTryOnService(models, "m", 0, slog.New(slog.NewTextHandler(&logs, nil)))

		_, err = service.GenerateTryOn(context.Background(), request)
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "garment=red_dress.png")
	})

	t.Run("timeout sets a deadline", func(t *testing.T) {
		models := &fakeModels{resp: &genai.GenerateContentResponse{}}
		service := NewGeminiTryOnService(models, "m", time.Minute, nil)

		_, err := service.GenerateTryOn(context.Background(), newPreparedRequest(t, ""))
		require.Error(t, err)
		assert.True(t, models.deadline)
	})

	t.Run("no image", func(t *testing.T) {
		models := &fakeModels{resp: &genai.GenerateContentResponse{}}
		service := NewGeminiTryOnService(models, "gemini-test-image", 0, nil)

		_, err := service.GenerateTryOn(context.Background(), newPreparedRequest(t, ""))
		var noImage *entities.NoImageReturnedError
		require.ErrorAs(t, err, &noImage)
		assert.Equal(t, "gemini-test-image", noImage.Model)
	})

	t.Run("undecodable payload", func(t *testing.T) {
		models := &fakeModels{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("garbage")}},
			}}}},
		}}
		service := NewGeminiTryOnService(models, "m", 0, nil)

		_, err := service.GenerateTryOn(context.Background(), newPreparedRequest(t, ""))
		var decodeErr *entities.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("upstream error is wrapped", func(t *testing.T) {
		upstream := errors.New("Error 429, Status: RESOURCE_EXHAUSTED")
		service := NewGeminiTryOnService(&fakeModels{err: upstream}, "m", 0, nil)

		_, err := service.GenerateTryOn(context.Background(), newPreparedRequest(t, ""))
		assert.ErrorIs(t, err, upstream)
	})
}
