// Package embedding provides centralized embedding configuration and provider
// abstractions. This package enables easy switching between embedding backends
// without touching the scoring pipeline.
package embedding

import "context"

// ProviderName identifies an embedding backend.
type ProviderName string

// ProviderName constants define supported embedding backends
const (
	// ProviderGemini is the Google Gemini embedding backend
	ProviderGemini ProviderName = "gemini"
	// ProviderOpenAI is the OpenAI embedding backend
	ProviderOpenAI ProviderName = "openai"
)

// Provider is an abstraction over embedding backends
type Provider interface {
	// Embed returns the embedding vector for a single non-empty text
	Embed(ctx context.Context, text string) ([]float32, error)
	// Model returns the underlying provider model name
	Model() string
	// Close releases any resources held by the provider
	Close() error
}

// Config holds the embedding configuration for the application
type Config struct {
	Provider ProviderName
	Model    string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini embedding configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    "text-embedding-004",
	}
}

// DefaultOpenAIConfig returns the default OpenAI embedding configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    "text-embedding-3-small",
	}
}

// NewProvider creates a new embedding provider based on configuration
func NewProvider(ctx context.Context, config *Config, apiKey string) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(config, apiKey)
	case ProviderGemini:
		return NewGeminiProvider(ctx, config, apiKey)
	default:
		return NewGeminiProvider(ctx, config, apiKey)
	}
}
