// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-align/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs a human-readable summary of a similarity score.
func (p *Printer) PrintScore(score *types.SimilarityScore) {
	if score == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Combined: %d / 100", score.CombinedScore))
	if score.Degraded {
		sb.WriteString("  (degraded: lexical only)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Lexical:  %.3f\n", score.LexicalScore))
	sb.WriteString(fmt.Sprintf("Semantic: %.3f\n", score.SemanticScore))
	sb.WriteString("\n")

	writeSkillList(&sb, "Matched skills", score.MatchedSkills)
	writeSkillList(&sb, "Missing skills", score.MissingSkills)

	if len(score.SectionCoverage) > 0 {
		sb.WriteString("Coverage:\n")
		for _, role := range []types.SectionRole{types.RoleSkills, types.RoleExperience, types.RoleOther} {
			if count, ok := score.SectionCoverage[role]; ok {
				sb.WriteString(fmt.Sprintf("  %-12s %d\n", string(role), count))
			}
		}
	}

	p.printBox("SIMILARITY SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeSkillList(sb *strings.Builder, label string, skills []string) {
	if len(skills) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(skills)))
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintPlan outputs the operations of a rewrite plan, applied targets first,
// then skipped skills with their reasons.
func (p *Printer) PrintPlan(plan *types.RewritePlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan %s\n", shortID(plan.ID)))
	sb.WriteString(fmt.Sprintf("Planned: %d   Skipped: %d\n\n", plan.Planned, plan.Skipped))

	planned := plan.PlannedOps()
	count := min(len(planned), maxItemsToShow)
	for i := 0; i < count; i++ {
		op := planned[i]
		target := fmt.Sprintf("section %d, block %d", op.SectionIndex, op.BlockIndex)
		if op.BlockIndex == types.AppendNewBlock {
			target = fmt.Sprintf("section %d, new block", op.SectionIndex)
		}
		sb.WriteString(fmt.Sprintf("+ %s\n", op.Display))
		sb.WriteString(fmt.Sprintf("  %s → %s\n", op.Strategy, target))
	}
	if len(planned) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more operations\n", len(planned)-maxItemsToShow))
	}

	if skipped := plan.SkippedSkills(); len(skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		shown := min(len(skipped), maxItemsToShow)
		for i := 0; i < shown; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s (no target section)\n", skipped[i]))
		}
		if len(skipped) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skipped)-maxItemsToShow))
		}
	}

	p.printBox("REWRITE PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutline outputs the section structure of a parsed document.
func (p *Printer) PrintOutline(doc *types.Document) {
	if doc == nil || len(doc.Sections) == 0 {
		return
	}

	var sb strings.Builder
	for i, section := range doc.Sections {
		heading := section.Heading
		if heading == "" {
			heading = "(no heading)"
		}
		if len(heading) > 28 {
			heading = heading[:25] + "..."
		}
		sb.WriteString(fmt.Sprintf("%2d  %-28s %-10s %d blocks", i, heading, string(section.Role), len(section.Blocks)))
		if i < len(doc.Sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DOCUMENT OUTLINE", sb.String())
}

// PrintKeyValues outputs aligned key/value pairs in a box. Pairs with empty
// values are dropped.
func (p *Printer) PrintKeyValues(title string, pairs [][2]string) {
	var sb strings.Builder
	written := 0
	for _, pair := range pairs {
		if pair[1] == "" {
			continue
		}
		if written > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-10s %s", pair[0]+":", pair[1]))
		written++
	}
	if written == 0 {
		return
	}

	p.printBox(title, sb.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
