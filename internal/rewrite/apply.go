package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-align/internal/logger"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
)

// State names the phases the rewrite engine moves through. Apply walks them
// in order and never revisits an earlier phase.
type State string

// Engine phases, in order.
const (
	StatePlanning           State = "PLANNING"
	StateInjectingSkills    State = "INJECTING_SKILLS_SECTION"
	StateIntegratingBullets State = "INTEGRATING_BULLETS"
	StateDone               State = "DONE"
)

// maxSuffixChars bounds accepted rewriter output; anything longer falls back
// to the template.
const maxSuffixChars = 200

// Apply materializes a plan against a document. The input document is cloned
// and only the clone is mutated, so the caller's document is never partially
// written. Application is idempotent: each operation re-extracts its target
// block's text and becomes a no-op when the skill is already present there.
func Apply(ctx context.Context, plan *types.RewritePlan, doc *types.Document, tax *taxonomy.Taxonomy, opts Options) (*types.Document, error) {
	if plan == nil {
		return nil, fmt.Errorf("rewrite plan is required")
	}
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if tax == nil {
		return nil, fmt.Errorf("taxonomy is required")
	}

	out := doc.Clone()
	planned := plan.PlannedOps()

	transition(plan.ID, StateInjectingSkills)
	for _, op := range planned {
		if op.Strategy != types.StrategySkillsListAppend {
			continue
		}
		if err := applySkillsAppend(out, op, tax); err != nil {
			return nil, err
		}
	}

	transition(plan.ID, StateIntegratingBullets)
	for _, op := range planned {
		if op.Strategy != types.StrategyBulletIntegration {
			continue
		}
		if err := applyBulletIntegration(ctx, out, op, tax, opts); err != nil {
			return nil, err
		}
	}

	transition(plan.ID, StateDone)
	return out, nil
}

// transition logs the engine entering a phase.
func transition(planID string, next State) {
	logger.Debug().Str("plan_id", planID).Str("state", string(next)).Msg("rewrite engine state")
}

// applySkillsAppend extends the target skills list with the skill's display
// form, copying the last existing run's format and matching the list's own
// delimiter. Existing runs are never modified.
func applySkillsAppend(doc *types.Document, op types.RewriteOp, tax *taxonomy.Taxonomy) error {
	if op.SectionIndex < 0 || op.SectionIndex >= len(doc.Sections) {
		return &NoTargetSectionError{Skill: op.Skill}
	}
	section := &doc.Sections[op.SectionIndex]

	blockIdx := op.BlockIndex
	if blockIdx == types.AppendNewBlock {
		// The target block did not exist at plan time, so the replay guard
		// widens to the whole section.
		if tax.ContainsSkill(section.Text(), op.Skill) {
			return nil
		}
		if len(section.Blocks) == 0 {
			section.Blocks = append(section.Blocks, types.Block{
				Kind: types.BlockParagraph,
				Runs: []types.Run{{Text: op.Display}},
			})
			logger.Debug().Str("skill", op.Skill).Msg("created skills list block")
			return nil
		}
		// an earlier operation in this pass created the list block
		blockIdx = len(section.Blocks) - 1
	}

	if blockIdx < 0 || blockIdx >= len(section.Blocks) {
		return &NoTargetSectionError{Skill: op.Skill}
	}
	block := &section.Blocks[blockIdx]
	if tax.ContainsSkill(block.Text(), op.Skill) {
		return nil
	}

	run := types.Run{Text: op.Display}
	if n := len(block.Runs); n > 0 {
		run.Format = block.Runs[n-1].Format
		if text := strings.TrimSpace(block.Text()); text != "" {
			if strings.ContainsAny(text[len(text)-1:], ",;|") {
				// the list already ends with its separator
				run.Text = " " + op.Display
			} else {
				run.Text = listSeparator(text) + op.Display
			}
		}
	}
	block.AppendRun(run)
	logger.Debug().Str("skill", op.Skill).Int("section", op.SectionIndex).Msg("appended skill to list")
	return nil
}

// applyBulletIntegration appends one trailing run to the target experience
// bullet, inheriting the block's dominant run format. The run's text comes
// from the LLM rewriter when configured, the template otherwise.
func applyBulletIntegration(ctx context.Context, doc *types.Document, op types.RewriteOp, tax *taxonomy.Taxonomy, opts Options) error {
	if op.SectionIndex < 0 || op.SectionIndex >= len(doc.Sections) {
		return &NoTargetSectionError{Skill: op.Skill}
	}
	section := &doc.Sections[op.SectionIndex]
	if op.BlockIndex < 0 || op.BlockIndex >= len(section.Blocks) {
		return &NoTargetSectionError{Skill: op.Skill}
	}
	block := &section.Blocks[op.BlockIndex]
	if tax.ContainsSkill(block.Text(), op.Skill) {
		return nil
	}

	suffix := bulletSuffix(ctx, block.Text(), op, tax, opts)
	block.AppendRun(types.Run{Text: suffix, Format: dominantFormat(block)})
	logger.Debug().Str("skill", op.Skill).Int("section", op.SectionIndex).Int("block", op.BlockIndex).Msg("integrated skill into bullet")
	return nil
}

// bulletSuffix produces the text appended to the target bullet. The LLM side
// channel is consulted first when configured; a failure or rejected answer
// falls back to the template, so application never fails on the LLM's account.
func bulletSuffix(ctx context.Context, bullet string, op types.RewriteOp, tax *taxonomy.Taxonomy, opts Options) string {
	if opts.Rewriter != nil {
		suffix, err := opts.Rewriter.RewriteBullet(ctx, bullet, op.Display)
		if err != nil {
			logger.Warn().Err(err).Str("skill", op.Skill).Msg("bullet rewriter failed, using template")
		} else if cleaned, ok := acceptSuffix(suffix, op.Skill, tax); ok {
			return cleaned
		} else {
			logger.Warn().Str("skill", op.Skill).Msg("bullet rewriter output rejected, using template")
		}
	}
	return expandTemplate(opts.BulletTemplate, op.Display)
}

// acceptSuffix validates rewriter output: a short trailing clause that
// actually mentions the skill. The leading separator is normalized so the
// clause joins the bullet cleanly.
func acceptSuffix(suffix, skill string, tax *taxonomy.Taxonomy) (string, bool) {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" || len(suffix) > maxSuffixChars {
		return "", false
	}
	if !tax.ContainsSkill(suffix, skill) {
		return "", false
	}
	if !strings.HasPrefix(suffix, ";") && !strings.HasPrefix(suffix, ",") {
		suffix = "; " + suffix
	}
	return suffix, true
}

// expandTemplate fills the bullet template with the skill's display form.
func expandTemplate(template, display string) string {
	if template == "" {
		template = DefaultBulletTemplate
	}
	return strings.ReplaceAll(template, "{skill}", display)
}

// listSeparator infers the delimiter an existing skill list uses so appended
// entries match it. Comma wins ties.
func listSeparator(text string) string {
	commas := strings.Count(text, ",")
	semis := strings.Count(text, ";")
	pipes := strings.Count(text, "|")
	switch {
	case semis > commas && semis >= pipes:
		return "; "
	case pipes > commas && pipes > semis:
		return " | "
	default:
		return ", "
	}
}

// dominantFormat returns the run format covering the most characters of the
// block. Ties go to the later run's format.
func dominantFormat(block *types.Block) types.RunFormat {
	if len(block.Runs) == 0 {
		return types.RunFormat{}
	}

	chars := make(map[types.RunFormat]int, len(block.Runs))
	lastSeen := make(map[types.RunFormat]int, len(block.Runs))
	for i, run := range block.Runs {
		chars[run.Format] += len([]rune(run.Text))
		lastSeen[run.Format] = i
	}

	var best types.RunFormat
	bestChars, bestSeen := -1, -1
	for format, n := range chars {
		if n > bestChars || (n == bestChars && lastSeen[format] > bestSeen) {
			best = format
			bestChars = n
			bestSeen = lastSeen[format]
		}
	}
	return best
}
