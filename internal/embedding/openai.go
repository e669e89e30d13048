package embedding

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider for OpenAI embedding models
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(config *Config, apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		config: config,
	}, nil
}

// Embed returns the embedding vector for the given text
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.config.Model),
	})
	if err != nil {
		return nil, &UnavailableError{Provider: ProviderOpenAI, Message: "embed request failed", Cause: err}
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &UnavailableError{Provider: ProviderOpenAI, Message: "empty embedding in response"}
	}

	return resp.Data[0].Embedding, nil
}

// Model returns the configured model name
func (p *OpenAIProvider) Model() string {
	return p.config.Model
}

// Close releases resources held by the provider
func (p *OpenAIProvider) Close() error {
	return nil
}
