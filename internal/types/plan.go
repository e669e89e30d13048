// Package types provides type definitions for structured data used throughout the resume-align system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// InsertStrategy selects how a missing skill is injected into the document.
type InsertStrategy string

// Injection strategies supported by the rewrite engine.
const (
	StrategySkillsListAppend  InsertStrategy = "skills-list-append"
	StrategyBulletIntegration InsertStrategy = "bullet-integration"
)

// OpStatus is the planning status of a single rewrite operation.
type OpStatus string

// Operation statuses. Skipped operations carry a SkipReason and are never
// applied; the similarity score itself is unaffected.
const (
	OpPlanned OpStatus = "planned"
	OpSkipped OpStatus = "skipped"
)

// AppendNewBlock as a block index means the operation appends a fresh block
// to the target section instead of extending an existing one.
const AppendNewBlock = -1

// RewriteOp is one injection operation in a rewrite plan. Skipped operations
// carry no strategy or target role, and their indices are -1.
type RewriteOp struct {
	Skill      string         `json:"skill"`   // canonical identifier
	Display    string         `json:"display"` // preferred surface form to insert
	Strategy   InsertStrategy `json:"strategy,omitempty"`
	TargetRole SectionRole    `json:"target_role,omitempty"`
	// SectionIndex and BlockIndex locate the target block in the document the
	// plan was computed against. BlockIndex AppendNewBlock appends a block.
	SectionIndex int      `json:"section_index"`
	BlockIndex   int      `json:"block_index"`
	Status       OpStatus `json:"status"`
	SkipReason   string   `json:"skip_reason,omitempty"`
}

// RewritePlan is an ordered sequence of injection operations computed once
// from a similarity score's missing skills. Applying a plan is idempotent:
// operations whose skill is already present in the target block are no-ops.
type RewritePlan struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Ops       []RewriteOp `json:"ops"`
	Planned   int         `json:"planned"`
	Skipped   int         `json:"skipped"`
}

// PlannedOps returns the operations that will actually be applied, in order.
func (p *RewritePlan) PlannedOps() []RewriteOp {
	out := make([]RewriteOp, 0, p.Planned)
	for _, op := range p.Ops {
		if op.Status == OpPlanned {
			out = append(out, op)
		}
	}
	return out
}

// SkippedSkills returns the canonical skills whose injection was skipped,
// in plan order.
func (p *RewritePlan) SkippedSkills() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Status == OpSkipped {
			out = append(out, op.Skill)
		}
	}
	return out
}
