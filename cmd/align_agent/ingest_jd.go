package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-align/internal/config"
	"github.com/jonathan/resume-align/internal/ingestion"
	"github.com/jonathan/resume-align/internal/observability"
	"github.com/spf13/cobra"
)

var ingestJDCmd = &cobra.Command{
	Use:   "ingest-jd",
	Short: "Ingest a job description from a text file or URL",
	Long: `Ingests a job description from either a text file or URL, cleans the
content, and writes the cleaned text plus metadata artifacts to the output
directory.

With --enrich the title, company, location and seniority are extracted from
the posting by Gemini (requires GEMINI_API_KEY).`,
	RunE: runIngestJD,
}

var (
	ingestConfigPath string
	ingestTextFile   string
	ingestURL        string
	ingestOutDir     string
	ingestUseBrowser bool
	ingestEnrich     bool
	ingestVerbose    bool
)

func init() {
	ingestJDCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	ingestJDCmd.Flags().StringVarP(&ingestTextFile, "text-file", "t", "", "Path to text file containing the job description")
	ingestJDCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job description from")
	ingestJDCmd.Flags().StringVarP(&ingestOutDir, "out", "o", "", "Output directory for artifacts")
	ingestJDCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use a headless browser for JS-heavy job boards (requires Chrome)")
	ingestJDCmd.Flags().BoolVar(&ingestEnrich, "enrich", false, "Extract title, company, location and seniority with Gemini (requires GEMINI_API_KEY)")
	ingestJDCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print a metadata summary to stderr")

	rootCmd.AddCommand(ingestJDCmd)
}

func runIngestJD(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(ingestConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("out") {
		cfg.OutDir = ingestOutDir
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = ingestUseBrowser
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	initLogging(cfg, ingestVerbose)

	// Validate mutually exclusive flags
	if ingestTextFile == "" && ingestURL == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if ingestTextFile != "" && ingestURL != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	var apiKey string
	if ingestEnrich {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required with --enrich")
		}
	}

	var cleanedText string
	var metadata *ingestion.Metadata

	if ingestTextFile != "" {
		cleanedText, metadata, err = ingestion.IngestFromFile(ingestTextFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
		if ingestEnrich {
			jd, err := ingestion.EnrichWithLLM(ctx, cleanedText, apiKey)
			if err != nil {
				return fmt.Errorf("failed to enrich metadata: %w", err)
			}
			metadata.Title = jd.Title
			metadata.Company = jd.Company
			metadata.Location = jd.Location
			metadata.Seniority = jd.Seniority
		}
	} else {
		cleanedText, metadata, err = ingestion.IngestFromURL(ctx, ingestURL, ingestion.URLOptions{
			APIKey:     apiKey,
			UseBrowser: cfg.UseBrowser,
		})
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	textPath, metaPath, err := ingestion.WriteArtifacts(cfg.OutDir, cleanedText, metadata)
	if err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}

	if ingestVerbose {
		observability.NewPrinter(os.Stderr).PrintKeyValues("JOB DESCRIPTION", [][2]string{
			{"Title", metadata.Title},
			{"Company", metadata.Company},
			{"Location", metadata.Location},
			{"Seniority", metadata.Seniority},
			{"Platform", metadata.Platform},
			{"Source", metadata.URL},
		})
	}

	fmt.Fprintf(os.Stdout, "Successfully ingested job description\n")
	fmt.Fprintf(os.Stdout, "Cleaned text: %s\n", textPath)
	fmt.Fprintf(os.Stdout, "Metadata: %s\n", metaPath)

	return nil
}
