package entities

import (
	"fmt"
	"path/filepath"
	"strings"

	"virtuwear/internal/domain/valueobjects"
)

// GarmentAsset is a resolved catalog image. It is identified by its
// filename stem.
type GarmentAsset struct {
	name string
	path string
	ext  string
}

func NewGarmentAsset(path string) (*GarmentAsset, error) {
	if !valueobjects.IsAllowedExtension(path) {
		return nil, fmt.Errorf("garment %s has an unsupported extension", filepath.Base(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve garment path: %w", err)
	}

	base := filepath.Base(abs)
	ext := filepath.Ext(base)

	return &GarmentAsset{
		name: strings.TrimSuffix(base, ext),
		path: abs,
		ext:  strings.ToLower(ext),
	}, nil
}

func (g *GarmentAsset) Name() string {
	return g.name
}

func (g *GarmentAsset) Path() string {
	return g.path
}

func (g *GarmentAsset) Ext() string {
	return g.ext
}

func (g *GarmentAsset) Filename() string {
	return filepath.Base(g.path)
}
