// Command validate_taxonomy checks a skill taxonomy JSON file against the
// taxonomy schema and the loader's structural rules: unique ids, unambiguous
// aliases, and related entries that reference known skills.
//
// Usage:
//
//	go run cmd/tools/validate_taxonomy/main.go [path/to/skills.json [path/to/taxonomy.schema.json]]
//
// Without arguments the embedded default taxonomy is checked. A second
// argument validates against that schema file instead of the embedded one,
// for checking taxonomy data against a schema draft. One-way related entries
// are reported as warnings; adjacency works in either direction, but
// symmetric data is easier to review.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/jonathan/resume-align/internal/schemas"
	"github.com/jonathan/resume-align/internal/taxonomy"
)

func main() {
	fmt.Println("=== Taxonomy Validation ===")
	fmt.Println()

	var (
		tax    *taxonomy.Taxonomy
		err    error
		source = "embedded default"
	)
	if len(os.Args) > 1 {
		source = os.Args[1]
		if len(os.Args) > 2 {
			if err := schemas.ValidateJSON(os.Args[2], source); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: Schema validation failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Schema: %s\n", os.Args[2])
		}
		data, readErr := os.ReadFile(source)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to read %s: %v\n", source, readErr)
			os.Exit(1)
		}
		tax, err = taxonomy.New(data)
	} else {
		tax, err = taxonomy.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Taxonomy rejected: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Source: %s\n", source)
	fmt.Printf("Skills: %d\n", tax.Len())
	fmt.Println()

	warnings := 0
	for _, id := range tax.SkillIDs() {
		for _, rel := range tax.Related(id) {
			if !slices.Contains(tax.Related(rel), id) {
				fmt.Printf("WARN: %s lists %s as related, but not the reverse\n", id, rel)
				warnings++
			}
		}
	}

	if warnings > 0 {
		fmt.Printf("\nValid with %d warning(s)\n", warnings)
		return
	}
	fmt.Println("Valid")
}
