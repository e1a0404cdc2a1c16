package external

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/repositories"
	"virtuwear/internal/domain/valueobjects"
)

// ContentGenerator is the subset of *genai.Models used for try-on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiTryOnService struct {
	models  ContentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGeminiTryOnService makes a single, unretried upstream call per request.
// A zero timeout leaves the call bounded only by the caller's context.
func NewGeminiTryOnService(models ContentGenerator, model string, timeout time.Duration, logger *slog.Logger) repositories.TryOnAIService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiTryOnService{
		models:  models,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *GeminiTryOnService) Model() string {
	return s.model
}

func (s *GeminiTryOnService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	contents, err := BuildContents(request)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info("Calling Gemini model",
		"requestID", request.ID(),
		"model", s.model,
		"garment", garmentName(request),
		"personBytes", len(request.PersonImage().Data()),
		"garmentBytes", len(request.GarmentImage().Data()))

	start := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	s.logger.Info("Gemini API response",
		"requestID", request.ID(),
		"candidatesCount", len(resp.Candidates),
		"elapsed", time.Since(start))

	inline, err := ExtractInlineImage(resp, s.model)
	if err != nil {
		s.logger.Warn("No image data in response", "requestID", request.ID(), "model", s.model)
		return nil, err
	}
	if inline.Text != "" {
		s.logger.Debug("Model returned text alongside the image", "requestID", request.ID(), "text", inline.Text)
	}

	image, err := valueobjects.NewImageData(inline.Data)
	if err != nil {
		return nil, &entities.DecodeError{Source: "returned image", Err: err}
	}

	result := entities.NewTryOnResult(request.ID(), image, s.model)
	result.SetText(inline.Text)
	return result, nil
}

// BuildContents maps the request parts, in order, onto one user content.
func BuildContents(request *entities.TryOnRequest) ([]*genai.Content, error) {
	var parts []*genai.Part
	for i, part := range request.Parts() {
		switch part.Kind {
		case entities.TextPart:
			parts = append(parts, genai.NewPartFromText(part.Text))
		case entities.ImagePart:
			if part.Image == nil {
				return nil, fmt.Errorf("image part %d is empty", i)
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: string(part.Image.MimeType()),
					Data:     part.Image.Data(),
				},
			})
		default:
			return nil, fmt.Errorf("unknown part kind %d", part.Kind)
		}
	}

	return []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}, nil
}

func garmentName(request *entities.TryOnRequest) string {
	if garment := request.Garment(); garment != nil {
		return garment.Filename()
	}
	return ""
}
