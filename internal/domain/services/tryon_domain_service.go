package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/repositories"
	"virtuwear/internal/domain/valueobjects"
)

type TryOnDomainService struct {
	aiService repositories.TryOnAIService
}

func NewTryOnDomainService(aiService repositories.TryOnAIService) *TryOnDomainService {
	return &TryOnDomainService{
		aiService: aiService,
	}
}

func (s *TryOnDomainService) ProcessTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	if err := request.PrepareImages(); err != nil {
		return nil, fmt.Errorf("image preparation failed: %w", err)
	}

	result, err := s.aiService.GenerateTryOn(ctx, request)
	if err != nil {
		var noImage *entities.NoImageReturnedError
		var decodeErr *entities.DecodeError
		switch {
		case errors.As(err, &noImage), errors.As(err, &decodeErr):
			// The no-image message mentions quota; it must not be rewritten.
			return nil, err
		case isQuotaError(err):
			return nil, &entities.QuotaExceededError{Err: err}
		}
		return nil, fmt.Errorf("try-on generation failed: %w", err)
	}

	if result == nil || !result.HasImage() {
		return nil, &entities.NoImageReturnedError{Model: s.aiService.Model()}
	}

	return result, nil
}

// Materialize converts the returned payload into the delivery format.
func (s *TryOnDomainService) Materialize(result *entities.TryOnResult, params *valueobjects.TryOnParameters) (*valueobjects.ImageData, error) {
	if params == nil {
		params = valueobjects.DefaultTryOnParameters()
	}

	out, err := result.Image().ToJPEG(params.CompressionQuality())
	if err != nil {
		return nil, &entities.DecodeError{Source: "returned image", Err: err}
	}
	return out, nil
}

func (s *TryOnDomainService) validateRequest(request *entities.TryOnRequest) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}

	if request.PersonImage() == nil {
		return fmt.Errorf("person image is required")
	}

	if request.GarmentImage() == nil {
		return fmt.Errorf("garment image is required")
	}

	if request.Parameters() == nil {
		return fmt.Errorf("parameters are required")
	}

	return nil
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var quota *entities.QuotaExceededError
	if errors.As(err, &quota) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
