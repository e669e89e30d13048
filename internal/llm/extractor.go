// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JDMetadata")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JDMetadataSchema returns the extraction schema for job posting metadata:
// the administrative facts about a posting, not its skill content. Skills are
// extracted deterministically by the taxonomy, never by the LLM.
func JDMetadataSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JDMetadata",
		Description: `You are an expert job posting parser. COPY TEXT VERBATIM where possible - do not paraphrase or reword.
Your task is to extract administrative metadata from a raw job posting.
Goal: job title, hiring company, location, seniority level.
EXCLUDE: requirements, responsibilities, benefits, EEO statements, application form fields.`,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Job title exactly as posted",
				Required:    true,
			},
			{
				Name:        "company",
				Type:        "\"string\"",
				Description: "Hiring company name; empty string if not stated - never guess",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "Primary location or 'Remote'; the first one if several are listed",
				Required:    false,
			},
			{
				Name:        "seniority",
				Type:        "\"string\"",
				Description: "One of: intern, junior, mid, senior, staff, principal, unknown",
				Required:    false,
			},
		},
	}
}
