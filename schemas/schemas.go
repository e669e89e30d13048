// Package schemas embeds the JSON Schemas for the artifacts this system
// produces and consumes, and validates documents against them.
package schemas

import (
	"embed"
	"fmt"

	jsonvalidate "github.com/jonathan/resume-align/internal/schemas"
)

// Schema file names available through this package.
const (
	Taxonomy        = "taxonomy.schema.json"
	SimilarityScore = "similarity_score.schema.json"
	RewritePlan     = "rewrite_plan.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Get returns the embedded schema content by file name.
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(data), nil
}

// MustGet returns the embedded schema content, panicking if the name is
// unknown. Use for schemas that are required at initialization time.
func MustGet(name string) string {
	content, err := Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load schema: %v", err))
	}
	return content
}

// Validate checks JSON content against the named embedded schema. Returns a
// *jsonvalidate.ValidationError carrying per-field messages when the document
// does not conform.
func Validate(name, jsonContent string) error {
	schema, err := Get(name)
	if err != nil {
		return err
	}
	return jsonvalidate.ValidateJSONString(schema, jsonContent)
}

// List returns the names of all embedded schemas.
func List() ([]string, error) {
	entries, err := schemaFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
