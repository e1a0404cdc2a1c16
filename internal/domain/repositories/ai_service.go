package repositories

import (
	"context"

	"virtuwear/internal/domain/entities"
)

// TryOnAIService sends a prepared try-on request to the upstream image
// model and returns the first image it produced.
type TryOnAIService interface {
	GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error)

	// Model is the upstream model identifier, reported in diagnostics.
	Model() string
}
