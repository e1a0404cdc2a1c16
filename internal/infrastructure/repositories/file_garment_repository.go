package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"virtuwear/internal/domain/entities"
	domainrepos "virtuwear/internal/domain/repositories"
	"virtuwear/internal/domain/valueobjects"
)

// FileGarmentRepository resolves garments against a read-only catalog
// directory.
type FileGarmentRepository struct {
	dir string
}

func NewFileGarmentRepository(dir string) domainrepos.GarmentRepository {
	return &FileGarmentRepository{dir: dir}
}

// Resolve tries, in order: the exact filename, the identifier with each
// allowed extension, then the first file in the (name-sorted) listing that
// starts with the identifier.
func (r *FileGarmentRepository) Resolve(ctx context.Context, identifier string) (*entities.GarmentAsset, error) {
	if !isPlainName(identifier) {
		return nil, &entities.NotFoundError{Identifier: identifier}
	}

	candidate := filepath.Join(r.dir, identifier)
	if isRegularFile(candidate) && valueobjects.IsAllowedExtension(candidate) {
		return entities.NewGarmentAsset(candidate)
	}

	for _, ext := range valueobjects.AllowedExtensions {
		p := filepath.Join(r.dir, identifier+ext)
		if isRegularFile(p) {
			return entities.NewGarmentAsset(p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, identifier) || !valueobjects.IsAllowedExtension(name) {
			continue
		}
		p := filepath.Join(r.dir, name)
		if isRegularFile(p) {
			return entities.NewGarmentAsset(p)
		}
	}

	return nil, &entities.NotFoundError{Identifier: identifier}
}

func (r *FileGarmentRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	files := []string{}
	for _, entry := range entries {
		if !valueobjects.IsAllowedExtension(entry.Name()) {
			continue
		}
		if isRegularFile(filepath.Join(r.dir, entry.Name())) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// isPlainName rejects identifiers that name anything outside the catalog
// directory itself.
func isPlainName(identifier string) bool {
	if identifier == "" || identifier == "." || identifier == ".." {
		return false
	}
	return !strings.ContainsAny(identifier, `/\`)
}

// isRegularFile follows symlinks.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
