package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-align/internal/config"
	"github.com/jonathan/resume-align/internal/docio"
	"github.com/jonathan/resume-align/internal/llm"
	"github.com/jonathan/resume-align/internal/observability"
	"github.com/jonathan/resume-align/internal/pipeline"
	"github.com/jonathan/resume-align/internal/rewrite"
	"github.com/jonathan/resume-align/internal/scoring"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Apply a rewrite plan and write the tailored resume",
	Long: `Scores the resume against the job description, plans skill injections for
the gaps, applies them, and writes the tailored document in the same format
as the input.

Missing skills are appended to the skills list in its existing format and
integrated into experience bullets that mention related skills. With --llm
each integration clause is rephrased by Gemini to fit the bullet; without it
a fixed template is used. Re-running the command on its own output changes
nothing.`,
	RunE: runRewrite,
}

var (
	rewriteConfigPath    string
	rewriteResume        string
	rewriteJob           string
	rewriteJobURL        string
	rewritePlanPath      string
	rewriteOut           string
	rewriteMaxInjections int
	rewriteTemplate      string
	rewriteLLM           bool
	rewriteTier          string
	rewriteUseBrowser    bool
	rewriteVerbose       bool
)

func init() {
	rewriteCmd.Flags().StringVar(&rewriteConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	rewriteCmd.Flags().StringVarP(&rewriteResume, "resume", "r", "", "Path to resume file (.docx, .txt or .md)")
	rewriteCmd.Flags().StringVarP(&rewriteJob, "jd", "j", "", "Path to job description text file (mutually exclusive with --jd-url)")
	rewriteCmd.Flags().StringVar(&rewriteJobURL, "jd-url", "", "URL to fetch the job description from (mutually exclusive with --jd)")
	rewriteCmd.Flags().StringVarP(&rewritePlanPath, "plan", "p", "", "Path to a plan JSON from a previous plan run (skips scoring and planning)")
	rewriteCmd.Flags().StringVarP(&rewriteOut, "out", "o", "", "Path to write the tailored resume to (required)")
	rewriteCmd.Flags().IntVar(&rewriteMaxInjections, "max-injections", 0, "Maximum number of skills to inject (0 = no cap)")
	rewriteCmd.Flags().StringVar(&rewriteTemplate, "template", "", "Clause template for bullet integration; {skill} is replaced by the skill name")
	rewriteCmd.Flags().BoolVar(&rewriteLLM, "llm", false, "Rephrase integration clauses with Gemini (requires GEMINI_API_KEY)")
	rewriteCmd.Flags().StringVar(&rewriteTier, "tier", "", "Gemini model tier for --llm: lite, standard or advanced")
	rewriteCmd.Flags().BoolVar(&rewriteUseBrowser, "use-browser", false, "Use a headless browser for JS-heavy job boards (requires Chrome)")
	rewriteCmd.Flags().BoolVarP(&rewriteVerbose, "verbose", "v", false, "Print a human-readable plan summary to stderr")

	rewriteCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(rewriteConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("resume") {
		cfg.Resume = rewriteResume
	}
	if cmd.Flags().Changed("jd") {
		cfg.Job = rewriteJob
	}
	if cmd.Flags().Changed("jd-url") {
		cfg.JobURL = rewriteJobURL
	}
	if cmd.Flags().Changed("max-injections") {
		cfg.MaxInjections = rewriteMaxInjections
	}
	if cmd.Flags().Changed("template") {
		cfg.BulletTemplate = rewriteTemplate
	}
	if cmd.Flags().Changed("llm") {
		cfg.LLMRewrite = rewriteLLM
	}
	if cmd.Flags().Changed("tier") {
		cfg.LLMTier = rewriteTier
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = rewriteUseBrowser
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	initLogging(cfg, rewriteVerbose)

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if rewritePlanPath == "" {
		if err := requireJobSource(cfg); err != nil {
			return err
		}
	} else if cfg.Job != "" || cfg.JobURL != "" {
		return fmt.Errorf("--plan and --jd/--jd-url are mutually exclusive; provide only one source")
	}

	tax := taxonomy.MustDefault()

	doc, raw, mime, err := openResume(cfg.Resume, tax)
	if err != nil {
		return err
	}
	if mime == docio.MimePDF {
		return fmt.Errorf("pdf input supports analyze and plan only; convert the resume to docx or text for rewriting")
	}

	var plan *types.RewritePlan
	if rewritePlanPath != "" {
		plan, err = loadPlanFile(rewritePlanPath)
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

		score, err := pipeline.Analyze(ctx, doc, jdText, tax, pipeline.AnalyzeOptions{
			Weights:  scoring.Weights{Lexical: cfg.LexicalWeight, Semantic: cfg.SemanticWeight},
			Provider: provider,
		})
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		plan, err = rewrite.BuildPlan(score, doc, tax, rewrite.Options{
			BulletTemplate: cfg.BulletTemplate,
			MaxInjections:  cfg.MaxInjections,
		})
		if err != nil {
			return fmt.Errorf("planning failed: %w", err)
		}
	}

	opts := rewrite.Options{
		BulletTemplate: cfg.BulletTemplate,
		MaxInjections:  cfg.MaxInjections,
	}
	if cfg.LLMRewrite {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required with --llm")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		opts.Rewriter = rewrite.NewLLMRewriter(client, llm.ModelTier(cfg.LLMTier))
	}

	outDoc, err := rewrite.Apply(ctx, plan, doc, tax, opts)
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}

	data, err := docio.Serialize(outDoc, mime, raw)
	if err != nil {
		return fmt.Errorf("failed to serialize tailored resume: %w", err)
	}
	if err := os.WriteFile(rewriteOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rewriteOut, err)
	}

	if rewriteVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintPlan(plan)
		printer.PrintOutline(outDoc)
	}

	fmt.Fprintf(os.Stdout, "Successfully rewrote resume\n")
	fmt.Fprintf(os.Stdout, "Applied: %d operation(s), skipped: %d\n", plan.Planned, plan.Skipped)
	fmt.Fprintf(os.Stdout, "Tailored resume: %s\n", rewriteOut)

	return nil
}
