package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"job_url": "https://example.com/job",
		"provider": "openai",
		"lexical_weight": 0.5,
		"semantic_weight": 0.5,
		"max_injections": 5,
		"llm_rewrite": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 0.5, cfg.LexicalWeight)
	assert.Equal(t, 0.5, cfg.SemanticWeight)
	assert.Equal(t, 5, cfg.MaxInjections)
	assert.True(t, cfg.LLMRewrite)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Job:    "job.txt",
		JobURL: "https://example.com/job",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{Provider: "anthropic"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Provider")
}

func TestValidate_UnknownTier(t *testing.T) {
	cfg := &Config{LLMTier: "turbo"}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_NegativeMaxInjections(t *testing.T) {
	cfg := &Config{MaxInjections: -1}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := &Config{LexicalWeight: 0.5, SemanticWeight: 0.6}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")
}

func TestValidate_UnsetWeightsPass(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingResumeFile(t *testing.T) {
	cfg := &Config{Resume: "/nonexistent/resume.docx"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := DefaultConfig()
	partial := Config{
		Resume:   "resume.docx",
		Provider: "openai",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Set values survive.
	assert.Equal(t, "resume.docx", merged.Resume)
	assert.Equal(t, "openai", merged.Provider)

	// Empty fields fill from defaults.
	assert.Equal(t, "artifacts", merged.OutDir)
	assert.Equal(t, 10, merged.MaxInjections)
	assert.Equal(t, "lite", merged.LLMTier)
	assert.Equal(t, "info", merged.LogLevel)
}

func TestMergeWithDefaults_WeightsMoveAsAPair(t *testing.T) {
	defaults := DefaultConfig()

	unset := Config{}
	merged := unset.MergeWithDefaults(defaults)
	assert.Equal(t, 0.4, merged.LexicalWeight)
	assert.Equal(t, 0.6, merged.SemanticWeight)

	custom := Config{LexicalWeight: 0.3, SemanticWeight: 0.7}
	merged = custom.MergeWithDefaults(defaults)
	assert.Equal(t, 0.3, merged.LexicalWeight)
	assert.Equal(t, 0.7, merged.SemanticWeight)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Resume: "resume.docx"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "resume.docx", merged.Resume)
	assert.Zero(t, merged.MaxInjections)
}
