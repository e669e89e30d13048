// Package types provides type definitions for structured data used throughout the resume-align system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SimilarityScore is the immutable result of one analysis request. A new
// request always produces a new record; nothing mutates an existing one.
type SimilarityScore struct {
	LexicalScore  float64 `json:"lexical_score"`  // TF-IDF cosine, [0,1]
	SemanticScore float64 `json:"semantic_score"` // embedding cosine, [0,1]
	CombinedScore int     `json:"combined_score"` // weighted blend scaled to [0,100]

	MatchedSkills []string `json:"matched_skills"` // canonical ids, sorted
	MissingSkills []string `json:"missing_skills"` // canonical ids, sorted

	// SectionCoverage counts, per section role, how many matched skills have
	// at least one mention inside a section of that role.
	SectionCoverage map[SectionRole]int `json:"section_coverage"`

	// Degraded is set when the semantic engine was unavailable and the score
	// was computed from the lexical signal only.
	Degraded bool `json:"degraded"`

	Suggestions []string `json:"suggestions,omitempty"`
}
