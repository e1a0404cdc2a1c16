package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"virtuwear/internal/domain/entities"
)

func imagePart(data string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte(data)}}
}

func candidate(parts ...*genai.Part) *genai.Candidate {
	return &genai.Candidate{Content: &genai.Content{Parts: parts}}
}

func TestExtractInlineImage(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		want     string
		wantText string
		noImage  bool
	}{
		{
			name:    "nil response",
			resp:    nil,
			noImage: true,
		},
		{
			name:    "empty candidates",
			resp:    &genai.GenerateContentResponse{},
			noImage: true,
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{nil, {Content: nil}},
			},
			noImage: true,
		},
		{
			name: "text only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{candidate(genai.NewPartFromText("I cannot do that"))},
			},
			noImage: true,
		},
		{
			name: "empty inline data is skipped",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{candidate(
					&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}},
					nil,
					imagePart("second"),
				)},
			},
			want: "second",
		},
		{
			name: "first image wins",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					candidate(genai.NewPartFromText("here you go"), imagePart("one"), imagePart("two")),
					candidate(imagePart("three")),
				},
			},
			want:     "one",
			wantText: "here you go",
		},
		{
			name: "falls through to second candidate",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					candidate(genai.NewPartFromText("no image here")),
					candidate(imagePart("payload")),
				},
			},
			want:     "payload",
			wantText: "no image here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractInlineImage(tt.resp, "gemini-test-image")
			if tt.noImage {
				var noImage *entities.NoImageReturnedError
				require.ErrorAs(t, err, &noImage)
				assert.Equal(t, "gemini-test-image", noImage.Model)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got.Data))
			assert.Equal(t, "image/png", got.MIMEType)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}
