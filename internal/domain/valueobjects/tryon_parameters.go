package valueobjects

import (
	"fmt"
	"strings"
)

const DefaultCompressionQuality = 95

type TryOnParameters struct {
	stylingPrompt      string
	compressionQuality int
}

func NewTryOnParameters(
	stylingPrompt string,
	compressionQuality int,
) (*TryOnParameters, error) {
	if compressionQuality < 1 || compressionQuality > 100 {
		return nil, fmt.Errorf("compressionQuality must be between 1 and 100, got %d", compressionQuality)
	}

	return &TryOnParameters{
		stylingPrompt:      strings.TrimSpace(stylingPrompt),
		compressionQuality: compressionQuality,
	}, nil
}

func DefaultTryOnParameters() *TryOnParameters {
	params, _ := NewTryOnParameters("", DefaultCompressionQuality)
	return params
}

// StylingPrompt is the optional free-text styling instruction, already trimmed.
func (p *TryOnParameters) StylingPrompt() string {
	return p.stylingPrompt
}

func (p *TryOnParameters) CompressionQuality() int {
	return p.compressionQuality
}
