// Package taxonomy maintains the static skill taxonomy: canonical skills,
// their surface-form aliases, the skill adjacency table, and the section
// heading vocabulary. The taxonomy is loaded once per process and read-only
// afterwards, so concurrent readers need no locking.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "embed"

	"github.com/jonathan/resume-align/internal/textproc"
	"github.com/jonathan/resume-align/internal/types"
	"github.com/jonathan/resume-align/schemas"
)

//go:embed skills.json
var embeddedData []byte

// Skill is one canonical skill with its alias surface forms and the
// canonical ids of topically adjacent skills.
type Skill struct {
	ID      string   `json:"id"`
	Display string   `json:"display"`
	Aliases []string `json:"aliases"`
	Related []string `json:"related,omitempty"`
}

type taxonomyData struct {
	Skills          []Skill             `json:"skills"`
	SectionHeadings map[string][]string `json:"section_headings"`
}

// Taxonomy is the immutable alias index built from taxonomy data. Aliasing is
// many-to-one: every surface form resolves to exactly one canonical skill.
type Taxonomy struct {
	skills        map[string]Skill
	aliasIndex    map[string]string // normalized alias phrase -> canonical id
	maxAliasWords int
	headingVocab  []headingEntry
}

// headingEntry is one normalized heading phrase with the role it implies.
// Entries are matched in order, skills vocabulary first.
type headingEntry struct {
	phrase string
	role   types.SectionRole
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Default returns the process-wide taxonomy, loading and validating the
// embedded data on first use. This is the single initialization path; nothing
// mutates the result afterwards.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = New(embeddedData)
	})
	return defaultTax, defaultErr
}

// MustDefault returns the process-wide taxonomy, panicking on load failure.
// Embedded data failing to load is a build defect, not a runtime condition.
func MustDefault() *Taxonomy {
	tax, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded taxonomy: %v", err))
	}
	return tax
}

// New builds a taxonomy from raw JSON data, validating it against the
// taxonomy schema first. Alias phrases are normalized through the shared
// token pipeline so lookups compare like with like.
func New(data []byte) (*Taxonomy, error) {
	if err := schemas.Validate(schemas.Taxonomy, string(data)); err != nil {
		return nil, &LoadError{Message: "schema validation failed", Cause: err}
	}

	var raw taxonomyData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "invalid JSON", Cause: err}
	}

	t := &Taxonomy{
		skills:     make(map[string]Skill, len(raw.Skills)),
		aliasIndex: make(map[string]string),
	}

	for _, skill := range raw.Skills {
		if _, exists := t.skills[skill.ID]; exists {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate skill id %q", skill.ID)}
		}
		t.skills[skill.ID] = skill

		for _, alias := range skill.Aliases {
			normalized := textproc.NormalizePhrase(alias)
			if normalized == "" {
				return nil, &LoadError{Message: fmt.Sprintf("alias %q of %q normalizes to nothing", alias, skill.ID)}
			}
			if owner, taken := t.aliasIndex[normalized]; taken && owner != skill.ID {
				return nil, &LoadError{Message: fmt.Sprintf("alias %q claimed by both %q and %q", alias, owner, skill.ID)}
			}
			t.aliasIndex[normalized] = skill.ID
			if words := strings.Count(normalized, " ") + 1; words > t.maxAliasWords {
				t.maxAliasWords = words
			}
		}
	}

	// adjacency must reference known skills
	for _, skill := range raw.Skills {
		for _, rel := range skill.Related {
			if _, known := t.skills[rel]; !known {
				return nil, &LoadError{Message: fmt.Sprintf("skill %q relates to unknown id %q", skill.ID, rel)}
			}
		}
	}

	// skills vocabulary first so a heading mentioning both wins as SKILLS
	for _, phrase := range raw.SectionHeadings["skills"] {
		t.headingVocab = append(t.headingVocab, headingEntry{phrase: textproc.NormalizePhrase(phrase), role: types.RoleSkills})
	}
	for _, phrase := range raw.SectionHeadings["experience"] {
		t.headingVocab = append(t.headingVocab, headingEntry{phrase: textproc.NormalizePhrase(phrase), role: types.RoleExperience})
	}
	for _, phrase := range raw.SectionHeadings["other"] {
		t.headingVocab = append(t.headingVocab, headingEntry{phrase: textproc.NormalizePhrase(phrase), role: types.RoleOther})
	}

	return t, nil
}

// Canonicalize resolves a surface form to its canonical skill id. All aliases
// of one skill resolve to the same id.
func (t *Taxonomy) Canonicalize(surface string) (string, bool) {
	id, ok := t.aliasIndex[textproc.NormalizePhrase(surface)]
	return id, ok
}

// Display returns the preferred surface form for a canonical id. Unknown ids
// come back unchanged so callers can render them anyway.
func (t *Taxonomy) Display(id string) string {
	if skill, ok := t.skills[id]; ok {
		return skill.Display
	}
	return id
}

// Related returns the canonical ids adjacent to the given skill.
func (t *Taxonomy) Related(id string) []string {
	return t.skills[id].Related
}

// Adjacent reports whether two canonical skills co-occur in the adjacency
// table, in either direction.
func (t *Taxonomy) Adjacent(a, b string) bool {
	for _, rel := range t.skills[a].Related {
		if rel == b {
			return true
		}
	}
	for _, rel := range t.skills[b].Related {
		if rel == a {
			return true
		}
	}
	return false
}

// HeadingRole classifies a section heading against the heading vocabulary.
// Headings that match nothing get RoleOther and are never injection targets.
func (t *Taxonomy) HeadingRole(heading string) types.SectionRole {
	normalized := textproc.NormalizePhrase(heading)
	if normalized == "" {
		return types.RoleOther
	}
	padded := " " + normalized + " "
	for _, entry := range t.headingVocab {
		if strings.Contains(padded, " "+entry.phrase+" ") {
			return entry.role
		}
	}
	return types.RoleOther
}

// IsHeadingPhrase reports whether the text contains any phrase from the
// heading vocabulary, including headings that only ever classify as OTHER.
// The document builder uses this when deciding whether a formatted line is
// a section heading at all.
func (t *Taxonomy) IsHeadingPhrase(text string) bool {
	normalized := textproc.NormalizePhrase(text)
	if normalized == "" {
		return false
	}
	padded := " " + normalized + " "
	for _, entry := range t.headingVocab {
		if strings.Contains(padded, " "+entry.phrase+" ") {
			return true
		}
	}
	return false
}

// SkillIDs returns all canonical ids, sorted.
func (t *Taxonomy) SkillIDs() []string {
	ids := make([]string, 0, len(t.skills))
	for id := range t.skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int {
	return len(t.skills)
}
