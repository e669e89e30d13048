package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini embedding models
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini embedding provider
func NewGeminiProvider(ctx context.Context, config *Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Embed returns the embedding vector for the given text
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	model := p.client.EmbeddingModel(p.config.Model)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &UnavailableError{Provider: ProviderGemini, Message: "embed request failed", Cause: err}
	}

	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &UnavailableError{Provider: ProviderGemini, Message: "empty embedding in response"}
	}

	return resp.Embedding.Values, nil
}

// Model returns the configured model name
func (p *GeminiProvider) Model() string {
	return p.config.Model
}

// Close releases resources held by the provider
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
