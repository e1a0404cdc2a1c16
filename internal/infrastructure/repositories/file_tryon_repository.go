package repositories

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"virtuwear/internal/domain/entities"
	domainrepos "virtuwear/internal/domain/repositories"
)

const (
	uploadBaseName = "user_photo"
	resultFileName = "tryon_result.jpg"
)

// FileTryOnRepository keeps uploads and results on disk, one directory per
// request id under each root.
type FileTryOnRepository struct {
	uploadsDir string
	outputDir  string
}

func NewFileTryOnRepository(uploadsDir, outputDir string) (domainrepos.TryOnRepository, error) {
	for _, dir := range []string{uploadsDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &FileTryOnRepository{
		uploadsDir: uploadsDir,
		outputDir:  outputDir,
	}, nil
}

func (r *FileTryOnRepository) SaveUpload(ctx context.Context, id entities.TryOnRequestID, ext string, src io.Reader) (string, error) {
	dir, err := r.requestDir(r.uploadsDir, id)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, uploadBaseName+ext)
	if err := writeAtomic(path, src); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, nil
}

func (r *FileTryOnRepository) SaveResult(ctx context.Context, result *entities.TryOnResult) (string, error) {
	if !result.HasImage() {
		return "", fmt.Errorf("result %s has no image", result.ID())
	}

	if _, err := r.requestDir(r.outputDir, result.RequestID()); err != nil {
		return "", err
	}

	path := r.ResultPath(result.RequestID())
	if err := writeAtomic(path, bytes.NewReader(result.Image().Data())); err != nil {
		return "", fmt.Errorf("failed to save result: %w", err)
	}
	return path, nil
}

func (r *FileTryOnRepository) ResultPath(id entities.TryOnRequestID) string {
	return filepath.Join(r.outputDir, string(id), resultFileName)
}

func (r *FileTryOnRepository) requestDir(root string, id entities.TryOnRequestID) (string, error) {
	name := string(id)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid request id %q", name)
	}

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// writeAtomic writes src to a temp file next to path and renames it into
// place, so readers never see a partial file.
func writeAtomic(path string, src io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
