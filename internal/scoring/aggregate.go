package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
)

// Input carries the per-engine results and extraction output the
// aggregator joins. ResumeMentions must come from the structured resume so
// every mention carries its section role; JDSkills are the canonical ids
// extracted from the job description.
type Input struct {
	LexicalScore     float64
	SemanticScore    float64
	Degraded         bool
	ResumeMentions   []types.SkillMention
	JDSkills         []string
	HasSkillsSection bool
}

// Aggregate computes the similarity score and gap report. It is a pure
// function of its inputs and the weights: identical inputs always produce
// identical output.
func Aggregate(in Input, weights Weights, tax *taxonomy.Taxonomy) types.SimilarityScore {
	resumeSkills := make(map[string]bool)
	for _, mention := range in.ResumeMentions {
		resumeSkills[mention.Skill] = true
	}

	jdSkills := make(map[string]bool)
	for _, id := range in.JDSkills {
		jdSkills[id] = true
	}

	matched := []string{}
	missing := []string{}
	for id := range jdSkills {
		if resumeSkills[id] {
			matched = append(matched, id)
		} else {
			missing = append(missing, id)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	coverage := sectionCoverage(matched, in.ResumeMentions)

	combined := int(math.Round((weights.Lexical*in.LexicalScore + weights.Semantic*in.SemanticScore) * 100))
	if combined < 0 {
		combined = 0
	}
	if combined > 100 {
		combined = 100
	}

	return types.SimilarityScore{
		LexicalScore:    in.LexicalScore,
		SemanticScore:   in.SemanticScore,
		CombinedScore:   combined,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		SectionCoverage: coverage,
		Degraded:        in.Degraded,
		Suggestions:     suggestions(matched, missing, in.HasSkillsSection, coverage, tax),
	}
}

// sectionCoverage counts, per role, how many matched skills have at least
// one mention inside a section of that role. All three roles are always
// present so serialized output is stable.
func sectionCoverage(matched []string, mentions []types.SkillMention) map[types.SectionRole]int {
	coverage := map[types.SectionRole]int{
		types.RoleSkills:     0,
		types.RoleExperience: 0,
		types.RoleOther:      0,
	}

	for _, id := range matched {
		seen := make(map[types.SectionRole]bool)
		for _, mention := range mentions {
			if mention.Skill != id || seen[mention.Role] {
				continue
			}
			seen[mention.Role] = true
			coverage[mention.Role]++
		}
	}
	return coverage
}

func suggestions(matched, missing []string, hasSkillsSection bool, coverage map[types.SectionRole]int, tax *taxonomy.Taxonomy) []string {
	var out []string

	if len(missing) > 0 {
		displays := make([]string, len(missing))
		for i, id := range missing {
			displays[i] = tax.Display(id)
		}
		out = append(out, fmt.Sprintf("Consider adding experience with: %s", strings.Join(displays, ", ")))
	}

	if !hasSkillsSection && len(matched)+len(missing) > 0 {
		out = append(out, "Add a dedicated skills section so relevant keywords are easy to find")
	}

	if len(matched) > 0 && coverage[types.RoleExperience] < len(matched) {
		out = append(out, "Back up more of your matched skills with concrete experience bullets")
	}

	return out
}
