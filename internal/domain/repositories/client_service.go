package repositories

import (
	"context"

	"google.golang.org/genai"
)

// AIClientConfig selects how the genai client authenticates: with an API key
// against the Gemini API, or with application default credentials against
// Vertex AI.
type AIClientConfig struct {
	APIKey    string
	UseVertex bool
	ProjectID string
	Location  string
}

// GenAIClientPool hands out a single lazily created genai client.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Config() *AIClientConfig

	Close() error
}
