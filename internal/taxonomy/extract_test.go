package taxonomy

import (
	"testing"

	"github.com/jonathan/resume-align/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mentionSkills(mentions []types.SkillMention) []string {
	out := make([]string, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, m.Skill)
	}
	return out
}

func TestExtract_JobDescriptionScenario(t *testing.T) {
	tax := MustDefault()

	jd := "Looking for a Python developer with experience in machine learning and SQL."
	mentions := tax.Extract(jd)

	assert.ElementsMatch(t, []string{"python", "machine-learning", "sql"}, mentionSkills(mentions))
}

func TestExtract_LongestMatchWins(t *testing.T) {
	tax := MustDefault()

	// "Node JS" must come out as one node.js mention, not a javascript
	// mention from the trailing "js" token
	mentions := tax.Extract("Shipped Node JS services")
	require.Len(t, mentions, 1)
	assert.Equal(t, "node.js", mentions[0].Skill)

	// same for a three-word phrase
	mentions = tax.Extract("Deployed on Google Cloud Platform infrastructure")
	require.Len(t, mentions, 1)
	assert.Equal(t, "gcp", mentions[0].Skill)
}

func TestExtract_SurfaceSpansPointIntoSource(t *testing.T) {
	tax := MustDefault()

	src := "Built models with Machine Learning daily"
	mentions := tax.Extract(src)
	require.Len(t, mentions, 1)

	m := mentions[0]
	assert.Equal(t, "machine-learning", m.Skill)
	assert.Equal(t, "Machine Learning", m.Surface)
	assert.Equal(t, m.Surface, src[m.Start:m.End])
	assert.Equal(t, types.FreeTextSection, m.SectionIndex)
}

func TestExtract_InflectedSurfaceForms(t *testing.T) {
	tax := MustDefault()

	mentions := tax.Extract("Delivered data pipelines using machine learned models")
	assert.Contains(t, mentionSkills(mentions), "machine-learning")
}

func TestExtract_UnknownTokensSilentlyDropped(t *testing.T) {
	tax := MustDefault()

	assert.Empty(t, tax.Extract("fluent in klingon and interpretive dance"))
	assert.Empty(t, tax.Extract(""))
	assert.Empty(t, tax.Extract("   \n\t  "))
}

func TestExtract_PunctuatedSkills(t *testing.T) {
	tax := MustDefault()

	mentions := tax.Extract("Maintained C++ and C# services backed by SQL.")
	assert.ElementsMatch(t, []string{"c++", "c#", "sql"}, mentionSkills(mentions))
}

func TestExtractFromDocument_TagsSectionAndRole(t *testing.T) {
	tax := MustDefault()

	doc := &types.Document{
		Sections: []types.Section{
			{
				Heading: "Skills",
				Role:    types.RoleSkills,
				Blocks: []types.Block{
					{Kind: types.BlockParagraph, Runs: []types.Run{{Text: "Python, SQL, Docker"}}},
				},
			},
			{
				Heading: "Experience",
				Role:    types.RoleExperience,
				Blocks: []types.Block{
					{Kind: types.BlockBullet, Runs: []types.Run{{Text: "Tuned PostgreSQL queries"}}},
				},
			},
		},
	}

	mentions := tax.ExtractFromDocument(doc)
	require.Len(t, mentions, 4)

	bySkill := make(map[string]types.SkillMention)
	for _, m := range mentions {
		bySkill[m.Skill] = m
	}
	assert.Equal(t, 0, bySkill["python"].SectionIndex)
	assert.Equal(t, types.RoleSkills, bySkill["python"].Role)
	assert.Equal(t, 1, bySkill["postgresql"].SectionIndex)
	assert.Equal(t, types.RoleExperience, bySkill["postgresql"].Role)
}

func TestContainsSkill_IdempotenceGuard(t *testing.T) {
	tax := MustDefault()

	assert.True(t, tax.ContainsSkill("Python, SQL, Docker", "docker"))
	assert.False(t, tax.ContainsSkill("Python, SQL, Docker", "kubernetes"))
}

func TestUniqueSkills_SortedAndDeduped(t *testing.T) {
	mentions := []types.SkillMention{
		{Skill: "sql"},
		{Skill: "python"},
		{Skill: "sql"},
		{Skill: "docker"},
	}

	assert.Equal(t, []string{"docker", "python", "sql"}, UniqueSkills(mentions))
}
