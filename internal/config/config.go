// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config is the CLI configuration loadable from a JSON file. All fields are
// optional; empty values fall back to defaults and CLI flags always win.
// API keys never live here, they come from the environment.
type Config struct {
	// Paths. Resume accepts docx, pdf, or plain text.
	Resume string `json:"resume,omitempty"`
	Job    string `json:"job,omitempty"`
	JobURL string `json:"job_url,omitempty" validate:"omitempty,url"`
	OutDir string `json:"out_dir,omitempty"`

	// Scoring. Provider selects the embedding backend; the weights form a
	// convex combination over the lexical and semantic engines.
	Provider       string  `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	LexicalWeight  float64 `json:"lexical_weight,omitempty" validate:"gte=0,lte=1"`
	SemanticWeight float64 `json:"semantic_weight,omitempty" validate:"gte=0,lte=1"`

	// Rewrite. BulletTemplate uses {skill} as the display-name placeholder;
	// LLMRewrite turns on the bullet side channel at the given tier.
	MaxInjections  int    `json:"max_injections,omitempty" validate:"gte=0"`
	BulletTemplate string `json:"bullet_template,omitempty"`
	LLMRewrite     bool   `json:"llm_rewrite,omitempty"`
	LLMTier        string `json:"llm_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`

	// Behavior
	UseBrowser bool   `json:"use_browser,omitempty"`
	LogLevel   string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat  string `json:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
}

// DefaultConfig returns the values used when neither config file nor flags
// set a field.
func DefaultConfig() Config {
	return Config{
		OutDir:         "artifacts",
		Provider:       "gemini",
		LexicalWeight:  0.4,
		SemanticWeight: 0.6,
		MaxInjections:  10,
		LLMTier:        "lite",
		LogLevel:       "info",
		LogFormat:      "pretty",
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field values and cross-field constraints. Required fields
// are not checked here; the CLI enforces those after merging flags.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// The weights form a convex combination. A fully unset pair is left for
	// MergeWithDefaults to fill.
	if c.LexicalWeight != 0 || c.SemanticWeight != 0 {
		if sum := c.LexicalWeight + c.SemanticWeight; math.Abs(sum-1) > 1e-9 {
			return fmt.Errorf("config error: 'lexical_weight' and 'semantic_weight' must sum to 1, got %g", sum)
		}
	}

	for name, path := range map[string]string{"resume": c.Resume, "job": c.Job} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a copy with empty fields filled from defaults.
// Bool fields are never merged; unset and false are indistinguishable, so
// CLI flags own those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.BulletTemplate == "" {
		result.BulletTemplate = defaults.BulletTemplate
	}
	if result.LLMTier == "" {
		result.LLMTier = defaults.LLMTier
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.MaxInjections == 0 {
		result.MaxInjections = defaults.MaxInjections
	}

	// The weights travel as a pair; merging them independently could break
	// the convex sum.
	if result.LexicalWeight == 0 && result.SemanticWeight == 0 {
		result.LexicalWeight = defaults.LexicalWeight
		result.SemanticWeight = defaults.SemanticWeight
	}

	return result
}
