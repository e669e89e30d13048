// Package ingestion turns raw job postings, local files or live URLs, into
// cleaned description text plus artifact metadata.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes a posting's text while keeping its structure: markdown
// headings and bullet lines survive, space runs collapse, and blank-line runs
// shrink to at most two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Markdown headings move to column zero.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet lines keep their indentation untouched past the marker.
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	// Regular lines keep leading indentation but collapse inner space runs.
	indent := len(line) - len(trimmed)
	return strings.Repeat(" ", indent) + spaceRuns.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// IngestFromFile reads a local posting file and returns its cleaned text with
// fresh metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, ""), nil
}

// WriteArtifacts stores the cleaned text and its metadata under outDir, named
// by the metadata ID. It returns the two file paths.
func WriteArtifacts(outDir string, cleanedText string, metadata *Metadata) (string, string, error) {
	if metadata == nil || metadata.ID == "" {
		return "", "", fmt.Errorf("metadata with an ID is required")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, metadata.ID+".jd.txt")
	if err := os.WriteFile(textPath, []byte(cleanedText), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return "", "", err
	}
	metaPath := filepath.Join(outDir, metadata.ID+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	return textPath, metaPath, nil
}
