package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-align/internal/config"
	"github.com/jonathan/resume-align/internal/docio"
	"github.com/jonathan/resume-align/internal/document"
	"github.com/jonathan/resume-align/internal/embedding"
	"github.com/jonathan/resume-align/internal/ingestion"
	"github.com/jonathan/resume-align/internal/logger"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
	"github.com/jonathan/resume-align/schemas"
)

// loadConfigFile loads and validates an optional config file. An empty path
// returns a zero config so flag overrides start from a clean slate.
func loadConfigFile(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return *loaded, nil
}

// initLogging configures the global logger from the merged config. The
// verbose flag forces debug level regardless of the configured one.
func initLogging(cfg config.Config, verbose bool) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: cfg.LogFormat})
}

// requireJobSource validates the job description input after config merging:
// exactly one of the file path and the URL must be set.
func requireJobSource(cfg config.Config) error {
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --jd or --jd-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--jd and --jd-url are mutually exclusive; provide only one")
	}
	return nil
}

// openResume reads a resume file and builds the structured document model.
// The raw bytes and detected mime type are returned for serialization.
func openResume(path string, tax *taxonomy.Taxonomy) (*types.Document, []byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read resume: %w", err)
	}
	mime := docio.MimeForPath(path)
	fragments, err := docio.Decode(raw, mime)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to decode resume: %w", err)
	}
	doc, err := document.Build(fragments, tax, mime)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to build document model: %w", err)
	}
	return doc, raw, mime, nil
}

// loadJobText returns cleaned job description text from the configured file
// or URL source.
func loadJobText(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.Job != "" {
		text, _, err := ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to ingest job description: %w", err)
		}
		return text, nil
	}
	text, _, err := ingestion.IngestFromURL(ctx, cfg.JobURL, ingestion.URLOptions{UseBrowser: cfg.UseBrowser})
	if err != nil {
		return "", fmt.Errorf("failed to ingest job description: %w", err)
	}
	return text, nil
}

// newEmbeddingProvider builds the configured embedding provider. A missing
// API key or a connection failure returns nil so scoring degrades to
// lexical-only instead of failing the run.
func newEmbeddingProvider(ctx context.Context, cfg config.Config) embedding.Provider {
	var (
		embCfg *embedding.Config
		envVar string
	)
	switch cfg.Provider {
	case "openai":
		embCfg = embedding.DefaultOpenAIConfig()
		envVar = "OPENAI_API_KEY"
	default:
		embCfg = embedding.DefaultGeminiConfig()
		envVar = "GEMINI_API_KEY"
	}

	key := os.Getenv(envVar)
	if key == "" {
		logger.Warn().Str("env", envVar).Msg("embedding API key not set, scoring degrades to lexical-only")
		return nil
	}

	provider, err := embedding.NewProvider(ctx, embCfg, key)
	if err != nil {
		logger.Warn().Err(err).Msg("embedding provider unavailable, scoring degrades to lexical-only")
		return nil
	}
	return provider
}

// loadScoreFile reads a similarity score produced by a previous analyze run,
// validating it against the score schema before decoding.
func loadScoreFile(path string) (*types.SimilarityScore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read score file: %w", err)
	}
	if err := schemas.Validate(schemas.SimilarityScore, string(data)); err != nil {
		return nil, fmt.Errorf("invalid score file %s: %w", path, err)
	}
	var score types.SimilarityScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("failed to parse score file: %w", err)
	}
	return &score, nil
}

// loadPlanFile reads a rewrite plan produced by a previous plan run,
// validating it against the plan schema before decoding.
func loadPlanFile(path string) (*types.RewritePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	if err := schemas.Validate(schemas.RewritePlan, string(data)); err != nil {
		return nil, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	var plan types.RewritePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	return &plan, nil
}

// writeJSON renders v as indented JSON to stdout, or to path when set.
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
