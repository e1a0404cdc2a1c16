package entities

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Product is one entry of the front-end catalog (products.json).
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Thumb    string  `json:"thumb"`
	Src      string  `json:"src"`
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
	Scale    Vector3 `json:"scale"`
}

// NewProduct builds the entry for the index-th valid catalog file (1-based).
// srcPrefix and thumb are URL paths relative to the site root; an empty
// thumb falls back to the source image.
func NewProduct(index int, filename, srcPrefix, thumb string) Product {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	src := path.Join(srcPrefix, filename)
	if thumb == "" {
		thumb = src
	}

	return Product{
		ID:       fmt.Sprintf("item%d", index),
		Name:     "Style " + stem,
		Thumb:    thumb,
		Src:      src,
		Position: Vector3{X: 0, Y: -0.07, Z: 0},
		Rotation: Vector3{X: 0, Y: 0, Z: 0},
		Scale:    Vector3{X: 0.6, Y: 0.22, Z: 1},
	}
}
