package external

import (
	"strings"

	"google.golang.org/genai"

	"virtuwear/internal/domain/entities"
)

// InlineImage is the first image payload found in a model response.
type InlineImage struct {
	Data     []byte
	MIMEType string
	// Text collects text parts seen before the image, for diagnostics.
	Text string
}

// ExtractInlineImage walks candidates, content and parts in order and returns
// the first part carrying non-empty inline bytes. A candidate without content
// or without image parts does not stop the search.
func ExtractInlineImage(resp *genai.GenerateContentResponse, model string) (*InlineImage, error) {
	if resp == nil {
		return nil, &entities.NoImageReturnedError{Model: model}
	}

	var text []string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch {
			case part == nil:
				continue
			case part.InlineData != nil && len(part.InlineData.Data) > 0:
				return &InlineImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Text:     strings.Join(text, "\n"),
				}, nil
			case part.Text != "":
				text = append(text, part.Text)
			}
		}
	}

	return nil, &entities.NoImageReturnedError{Model: model}
}
