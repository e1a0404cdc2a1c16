package repositories

import (
	"context"
	"io"

	"virtuwear/internal/domain/entities"
)

// TryOnRepository stores the files of a try-on request. Every request gets
// its own namespace so concurrent requests never share a path.
type TryOnRepository interface {
	SaveUpload(ctx context.Context, id entities.TryOnRequestID, ext string, r io.Reader) (string, error)
	SaveResult(ctx context.Context, result *entities.TryOnResult) (string, error)
	ResultPath(id entities.TryOnRequestID) string
}
