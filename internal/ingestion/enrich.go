package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-align/internal/llm"
)

// enrichExcerptChars caps how much posting text goes to the model. The
// administrative facts sit at the top of a posting.
const enrichExcerptChars = 4000

// JDMetadata is the structured output of LLM metadata enrichment. Skills are
// deliberately absent; those come from the deterministic taxonomy extractor.
type JDMetadata struct {
	Title     string `json:"title"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	Seniority string `json:"seniority,omitempty"`
}

// EnrichMetadata extracts posting metadata through an existing LLM client.
func EnrichMetadata(ctx context.Context, client llm.Client, text string) (*JDMetadata, error) {
	prompt := llm.BuildExtractionPrompt(llm.JDMetadataSchema(), excerpt(text, enrichExcerptChars))

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)

	var jd JDMetadata
	if err := json.Unmarshal([]byte(raw), &jd); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata JSON: %w (content: %s)", err, raw)
	}
	return &jd, nil
}

// EnrichWithLLM builds a client for the given API key and extracts posting
// metadata with it.
func EnrichWithLLM(ctx context.Context, text string, apiKey string) (*JDMetadata, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for LLM enrichment")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return EnrichMetadata(ctx, client, text)
}

// excerpt trims text to roughly limit bytes, preferring a newline boundary.
func excerpt(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > limit/2 {
		return cut[:i]
	}
	return cut
}
