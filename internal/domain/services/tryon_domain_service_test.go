package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/valueobjects"
)

type mockAIService struct {
	result   *entities.TryOnResult
	err      error
	received *entities.TryOnRequest
}

func (m *mockAIService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	m.received = request
	return m.result, m.err
}

func (m *mockAIService) Model() string {
	return "gemini-test-image"
}

func createTestImageData(t *testing.T) *valueobjects.ImageData {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

	imageData, err := valueobjects.NewImageData(buf.Bytes())
	require.NoError(t, err, "Failed to create test image data")
	return imageData
}

func newRequest(t *testing.T) *entities.TryOnRequest {
	request, err := entities.NewTryOnRequest("", createTestImageData(t), createTestImageData(t), nil)
	require.NoError(t, err)
	return request
}

func TestTryOnDomainService_ProcessTryOn(t *testing.T) {
	t.Run("successful processing", func(t *testing.T) {
		request := newRequest(t)
		mockAI := &mockAIService{
			result: entities.NewTryOnResult(request.ID(), createTestImageData(t), "gemini-test-image"),
		}

		service := NewTryOnDomainService(mockAI)
		result, err := service.ProcessTryOn(context.Background(), request)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.HasImage())
		require.NotNil(t, mockAI.received)
		assert.True(t, mockAI.received.PersonImage().IsPNG(), "images are normalized before the upstream call")
		assert.True(t, mockAI.received.GarmentImage().IsPNG())
	})

	t.Run("AI service error", func(t *testing.T) {
		mockAI := &mockAIService{err: errors.New("AI service failed")}

		service := NewTryOnDomainService(mockAI)
		result, err := service.ProcessTryOn(context.Background(), newRequest(t))

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "AI service failed")
	})

	quotaCases := []string{
		"Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED",
		"You exceeded your current Quota, please check your plan",
	}
	for _, msg := range quotaCases {
		t.Run("quota error handling: "+msg, func(t *testing.T) {
			mockAI := &mockAIService{err: errors.New(msg)}

			service := NewTryOnDomainService(mockAI)
			_, err := service.ProcessTryOn(context.Background(), newRequest(t))

			var quota *entities.QuotaExceededError
			require.ErrorAs(t, err, &quota)
			assert.Contains(t, err.Error(), "Gemini quota exhausted for this model")
		})
	}

	t.Run("no image error passes through unchanged", func(t *testing.T) {
		mockAI := &mockAIService{err: &entities.NoImageReturnedError{Model: "gemini-test-image"}}

		service := NewTryOnDomainService(mockAI)
		_, err := service.ProcessTryOn(context.Background(), newRequest(t))

		var noImage *entities.NoImageReturnedError
		require.ErrorAs(t, err, &noImage)
		var quota *entities.QuotaExceededError
		assert.False(t, errors.As(err, &quota))
	})

	t.Run("empty result is no image", func(t *testing.T) {
		request := newRequest(t)
		mockAI := &mockAIService{result: entities.NewTryOnResult(request.ID(), nil, "gemini-test-image")}

		service := NewTryOnDomainService(mockAI)
		result, err := service.ProcessTryOn(context.Background(), request)

		var noImage *entities.NoImageReturnedError
		require.ErrorAs(t, err, &noImage)
		assert.Equal(t, "gemini-test-image", noImage.Model)
		assert.Nil(t, result)
	})

	t.Run("nil request", func(t *testing.T) {
		service := NewTryOnDomainService(&mockAIService{})
		_, err := service.ProcessTryOn(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestTryOnDomainService_Materialize(t *testing.T) {
	service := NewTryOnDomainService(&mockAIService{})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 2))))
	payload, err := valueobjects.NewImageData(buf.Bytes())
	require.NoError(t, err)

	out, err := service.Materialize(entities.NewTryOnResult("req", payload, "m"), nil)
	require.NoError(t, err)
	assert.True(t, out.IsJPEG())

	// A payload that passes format sniffing but fails full decoding.
	truncated, err := valueobjects.NewImageData(buf.Bytes()[:40])
	if err == nil {
		_, err = service.Materialize(entities.NewTryOnResult("req", truncated, "m"), nil)
		var decodeErr *entities.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	}
}
