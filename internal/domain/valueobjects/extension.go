package valueobjects

import (
	"path/filepath"
	"slices"
	"strings"
)

// AllowedExtensions lists the accepted image extensions in lookup order.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// IsAllowedExtension reports whether name carries one of AllowedExtensions,
// ignoring case.
func IsAllowedExtension(name string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(name)))
}

// UploadExtension returns the lower-cased extension of filename when it is
// allowed, and ".jpg" otherwise.
func UploadExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(AllowedExtensions, ext) {
		return ".jpg"
	}
	return ext
}
