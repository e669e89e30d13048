package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-align/internal/config"
	"github.com/jonathan/resume-align/internal/observability"
	"github.com/jonathan/resume-align/internal/pipeline"
	"github.com/jonathan/resume-align/internal/scoring"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Scores a resume against a job description by combining lexical TF-IDF
similarity with embedding-based semantic similarity, and reports matched and
missing skills with per-section coverage.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values. The similarity score is written to
stdout as JSON; without an embedding API key the semantic signal is dropped
and the score is marked degraded.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath     string
	analyzeResume         string
	analyzeJob            string
	analyzeJobURL         string
	analyzeProvider       string
	analyzeLexicalWeight  float64
	analyzeSemanticWeight float64
	analyzeOut            string
	analyzeUseBrowser     bool
	analyzeVerbose        bool
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (.docx, .pdf, .txt or .md)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "jd", "j", "", "Path to job description text file (mutually exclusive with --jd-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "jd-url", "", "URL to fetch the job description from (mutually exclusive with --jd)")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", "", "Embedding provider: gemini or openai")
	analyzeCmd.Flags().Float64Var(&analyzeLexicalWeight, "lexical-weight", 0, "Weight of the lexical signal (must sum to 1 with --semantic-weight)")
	analyzeCmd.Flags().Float64Var(&analyzeSemanticWeight, "semantic-weight", 0, "Weight of the semantic signal (must sum to 1 with --lexical-weight)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the score JSON to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use a headless browser for JS-heavy job boards (requires Chrome)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(analyzeConfigPath)
	if err != nil {
		return err
	}

	// CLI overrides take priority over config file values, but only when
	// the flag was explicitly set.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("jd") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("jd-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = analyzeProvider
	}
	if cmd.Flags().Changed("lexical-weight") {
		cfg.LexicalWeight = analyzeLexicalWeight
	}
	if cmd.Flags().Changed("semantic-weight") {
		cfg.SemanticWeight = analyzeSemanticWeight
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	initLogging(cfg, analyzeVerbose)

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if err := requireJobSource(cfg); err != nil {
		return err
	}
	weights := scoring.Weights{Lexical: cfg.LexicalWeight, Semantic: cfg.SemanticWeight}
	if err := weights.Validate(); err != nil {
		return err
	}

	tax := taxonomy.MustDefault()

	doc, _, _, err := openResume(cfg.Resume, tax)
	if err != nil {
		return err
	}
	jdText, err := loadJobText(ctx, cfg)
	if err != nil {
		return err
	}

	provider := newEmbeddingProvider(ctx, cfg)
	if provider != nil {
		defer provider.Close()
	}

	score, err := pipeline.Analyze(ctx, doc, jdText, tax, pipeline.AnalyzeOptions{
		Weights:  weights,
		Provider: provider,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintOutline(doc)
		printer.PrintScore(score)
	}

	return writeJSON(score, analyzeOut)
}
