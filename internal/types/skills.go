// Package types provides type definitions for structured data used throughout the resume-align system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FreeTextSection marks a skill mention found in free text (a job description)
// rather than inside a document section.
const FreeTextSection = -1

// SkillMention records one occurrence of a canonical skill in a source text.
// Mentions are created during extraction, consumed by gap analysis, and
// discarded after scoring.
type SkillMention struct {
	Skill        string      `json:"skill"`   // canonical identifier
	Surface      string      `json:"surface"` // surface form as matched
	Start        int         `json:"start"`   // byte offset in the source text
	End          int         `json:"end"`
	SectionIndex int         `json:"section_index"` // FreeTextSection for JD text
	Role         SectionRole `json:"section_role,omitempty"`
}
