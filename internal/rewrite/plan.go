// Package rewrite plans and applies append-only skill injections into a
// resume document. Planning turns a similarity score's missing skills into an
// ordered operation list; application materializes that list against a clone
// of the document, so existing runs are never edited and the caller's
// document is never partially written.
package rewrite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-align/internal/logger"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
)

// DefaultBulletTemplate is the clause appended by bullet-integration
// operations when no LLM rewriter is configured or its output is rejected.
// "{skill}" is replaced with the skill's display form.
const DefaultBulletTemplate = "; experience with {skill}"

// Options control planning and application of a rewrite plan.
type Options struct {
	// BulletTemplate is the text appended by bullet-integration operations.
	// Empty means DefaultBulletTemplate.
	BulletTemplate string
	// MaxInjections caps how many missing skills receive operations.
	// 0 means unlimited. Skills beyond the cap are dropped from the plan
	// entirely, lowest priority (end of the missing list) first.
	MaxInjections int
	// Rewriter, when set, supplies bullet-integration text instead of the
	// template. Any failure or rejected output falls back to the template,
	// so the rewriter is never a hard dependency.
	Rewriter BulletRewriter
}

// DefaultOptions returns planning options with the stock bullet template and
// no injection cap.
func DefaultOptions() Options {
	return Options{BulletTemplate: DefaultBulletTemplate}
}

// BuildPlan computes the injection operations for a score's missing skills.
// Planning never mutates the document. A missing skill gets a
// skills-list-append operation when the document has a SKILLS section, plus a
// bullet-integration operation when an experience bullet mentions at least
// one skill adjacent to it. A skill with neither target is recorded as
// skipped with ReasonNoTargetSection; the plan itself still succeeds.
func BuildPlan(score *types.SimilarityScore, doc *types.Document, tax *taxonomy.Taxonomy, opts Options) (*types.RewritePlan, error) {
	if score == nil {
		return nil, fmt.Errorf("similarity score is required")
	}
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if tax == nil {
		return nil, fmt.Errorf("taxonomy is required")
	}

	plan := &types.RewritePlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	transition(plan.ID, StatePlanning)

	missing := append([]string(nil), score.MissingSkills...)
	if opts.MaxInjections > 0 && len(missing) > opts.MaxInjections {
		logger.Debug().
			Str("plan_id", plan.ID).
			Int("cap", opts.MaxInjections).
			Int("missing", len(missing)).
			Msg("trimming plan to injection cap")
		missing = missing[:opts.MaxInjections]
	}

	skillsSection, skillsBlock, hasSkillsTarget := skillsTarget(doc)

	for _, id := range missing {
		display := tax.Display(id)
		scheduled := false

		if hasSkillsTarget {
			plan.Ops = append(plan.Ops, types.RewriteOp{
				Skill:        id,
				Display:      display,
				Strategy:     types.StrategySkillsListAppend,
				TargetRole:   types.RoleSkills,
				SectionIndex: skillsSection,
				BlockIndex:   skillsBlock,
				Status:       types.OpPlanned,
			})
			scheduled = true
		}

		if si, bi, ok := bulletTarget(doc, id, tax); ok {
			plan.Ops = append(plan.Ops, types.RewriteOp{
				Skill:        id,
				Display:      display,
				Strategy:     types.StrategyBulletIntegration,
				TargetRole:   types.RoleExperience,
				SectionIndex: si,
				BlockIndex:   bi,
				Status:       types.OpPlanned,
			})
			scheduled = true
		}

		if !scheduled {
			// indices are meaningless for skipped operations
			plan.Ops = append(plan.Ops, types.RewriteOp{
				Skill:        id,
				Display:      display,
				SectionIndex: -1,
				BlockIndex:   -1,
				Status:       types.OpSkipped,
				SkipReason:   ReasonNoTargetSection,
			})
		}
	}

	for _, op := range plan.Ops {
		if op.Status == types.OpPlanned {
			plan.Planned++
		} else {
			plan.Skipped++
		}
	}

	logger.Debug().
		Str("plan_id", plan.ID).
		Int("planned", plan.Planned).
		Int("skipped", plan.Skipped).
		Msg("rewrite plan built")
	return plan, nil
}

// skillsTarget picks the block a skills-list-append lands in: the last
// list-style block of the first SKILLS section, falling back to the section's
// last block. A SKILLS section with no blocks yields AppendNewBlock.
func skillsTarget(doc *types.Document) (sectionIdx, blockIdx int, ok bool) {
	indices := doc.SectionsWithRole(types.RoleSkills)
	if len(indices) == 0 {
		return 0, 0, false
	}

	si := indices[0]
	section := &doc.Sections[si]
	for i := len(section.Blocks) - 1; i >= 0; i-- {
		if isListStyle(section.Blocks[i].Text()) {
			return si, i, true
		}
	}
	if n := len(section.Blocks); n > 0 {
		return si, n - 1, true
	}
	return si, types.AppendNewBlock, true
}

// isListStyle reports whether a block's text reads as a delimiter-separated
// skill list.
func isListStyle(text string) bool {
	return strings.ContainsAny(text, ",;|") || strings.Contains(text, "·")
}

// bulletTarget finds the experience bullet most related to the skill: the
// bullet whose mentioned skills share the most adjacency-table edges with it.
// Ties go to the earliest bullet in document order. A skill with no adjacent
// bullet gets no bullet-integration operation.
func bulletTarget(doc *types.Document, skill string, tax *taxonomy.Taxonomy) (sectionIdx, blockIdx int, ok bool) {
	best := 0
	for si := range doc.Sections {
		section := &doc.Sections[si]
		if section.Role != types.RoleExperience {
			continue
		}
		for bi := range section.Blocks {
			block := &section.Blocks[bi]
			if block.Kind != types.BlockBullet {
				continue
			}
			if overlap := adjacencyOverlap(block.Text(), skill, tax); overlap > best {
				best = overlap
				sectionIdx, blockIdx, ok = si, bi, true
			}
		}
	}
	return sectionIdx, blockIdx, ok
}

// adjacencyOverlap counts the distinct canonical skills in the text that the
// adjacency table links to the target skill.
func adjacencyOverlap(text, skill string, tax *taxonomy.Taxonomy) int {
	count := 0
	for _, id := range taxonomy.UniqueSkills(tax.Extract(text)) {
		if id != skill && tax.Adjacent(id, skill) {
			count++
		}
	}
	return count
}
