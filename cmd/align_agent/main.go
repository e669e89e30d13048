// Package main provides the align_agent CLI for scoring and tailoring
// resumes against job descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "align_agent",
	Short: "Resume alignment agent",
	Long:  "align_agent scores a resume against a job description, plans keyword injections for the skills the resume lacks, and rewrites the resume so the tailored copy reads naturally and survives automated screening.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
