package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-align/internal/config"
	"github.com/jonathan/resume-align/internal/observability"
	"github.com/jonathan/resume-align/internal/pipeline"
	"github.com/jonathan/resume-align/internal/rewrite"
	"github.com/jonathan/resume-align/internal/scoring"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a rewrite plan for the resume's skill gaps",
	Long: `Builds a deterministic rewrite plan for the skills the job description
asks for that the resume lacks. Each missing skill becomes a skills-list
append or a bullet-integration operation against a concrete section and
block, or is recorded as skipped when no suitable target exists.

The similarity score can be computed in place from --jd or --jd-url, or
loaded from a previous analyze run with --score. The plan is written to
stdout as JSON.`,
	RunE: runPlan,
}

var (
	planConfigPath    string
	planResume        string
	planJob           string
	planJobURL        string
	planScorePath     string
	planMaxInjections int
	planOut           string
	planUseBrowser    bool
	planVerbose       bool
)

func init() {
	planCmd.Flags().StringVar(&planConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	planCmd.Flags().StringVarP(&planResume, "resume", "r", "", "Path to resume file (.docx, .pdf, .txt or .md)")
	planCmd.Flags().StringVarP(&planJob, "jd", "j", "", "Path to job description text file (mutually exclusive with --jd-url)")
	planCmd.Flags().StringVar(&planJobURL, "jd-url", "", "URL to fetch the job description from (mutually exclusive with --jd)")
	planCmd.Flags().StringVarP(&planScorePath, "score", "s", "", "Path to a score JSON from a previous analyze run (skips scoring)")
	planCmd.Flags().IntVar(&planMaxInjections, "max-injections", 0, "Maximum number of skills to plan injections for (0 = no cap)")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "Write the plan JSON to this file instead of stdout")
	planCmd.Flags().BoolVar(&planUseBrowser, "use-browser", false, "Use a headless browser for JS-heavy job boards (requires Chrome)")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print a human-readable plan summary to stderr")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(planConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("resume") {
		cfg.Resume = planResume
	}
	if cmd.Flags().Changed("jd") {
		cfg.Job = planJob
	}
	if cmd.Flags().Changed("jd-url") {
		cfg.JobURL = planJobURL
	}
	if cmd.Flags().Changed("max-injections") {
		cfg.MaxInjections = planMaxInjections
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = planUseBrowser
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	initLogging(cfg, planVerbose)

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if planScorePath == "" && cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --jd, --jd-url or --score must be provided")
	}
	if planScorePath != "" && (cfg.Job != "" || cfg.JobURL != "") {
		return fmt.Errorf("--score and --jd/--jd-url are mutually exclusive; provide only one source")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--jd and --jd-url are mutually exclusive; provide only one")
	}

	tax := taxonomy.MustDefault()

	doc, _, _, err := openResume(cfg.Resume, tax)
	if err != nil {
		return err
	}

	var score *types.SimilarityScore
	if planScorePath != "" {
		score, err = loadScoreFile(planScorePath)
		if err != nil {
			return err
		}
	} else {
		jdText, err := loadJobText(ctx, cfg)
		if err != nil {
			return err
		}

		provider := newEmbeddingProvider(ctx, cfg)
		if provider != nil {
			defer provider.Close()
		}

		score, err = pipeline.Analyze(ctx, doc, jdText, tax, pipeline.AnalyzeOptions{
			Weights:  scoring.Weights{Lexical: cfg.LexicalWeight, Semantic: cfg.SemanticWeight},
			Provider: provider,
		})
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	}

	plan, err := rewrite.BuildPlan(score, doc, tax, rewrite.Options{
		BulletTemplate: cfg.BulletTemplate,
		MaxInjections:  cfg.MaxInjections,
	})
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if planVerbose {
		observability.NewPrinter(os.Stderr).PrintPlan(plan)
	}

	return writeJSON(plan, planOut)
}
