package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"virtuwear/internal/domain/repositories"
)

type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

// NewGenAIClientPool validates config up front; the client itself is created
// on first use.
func NewGenAIClientPool(config *repositories.AIClientConfig) (repositories.GenAIClientPool, error) {
	if config == nil {
		return nil, fmt.Errorf("client config is required")
	}
	if config.UseVertex {
		if config.ProjectID == "" || config.Location == "" {
			return nil, fmt.Errorf("project and location are required for Vertex AI")
		}
	} else if config.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return &genAIClientPool{
		config: config,
	}, nil
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, clientConfig(p.config))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Config() *repositories.AIClientConfig {
	return p.config
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// genai.Client holds no resources that need releasing.
	p.client = nil
	return nil
}

func clientConfig(config *repositories.AIClientConfig) *genai.ClientConfig {
	if config.UseVertex {
		return &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  config.ProjectID,
			Location: config.Location,
		}
	}
	return &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  config.APIKey,
	}
}
