package repositories

import (
	"context"

	"virtuwear/internal/domain/entities"
)

type GarmentRepository interface {
	// Resolve maps a loosely specified garment identifier to a catalog file.
	// It fails with *entities.NotFoundError when nothing matches.
	Resolve(ctx context.Context, identifier string) (*entities.GarmentAsset, error)

	// List returns the sorted filenames of all catalog images.
	List(ctx context.Context) ([]string, error)
}
