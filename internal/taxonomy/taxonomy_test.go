package taxonomy

import (
	"testing"

	"github.com/jonathan/resume-align/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedData(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.Greater(t, tax.Len(), 50)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, tax, again, "Default should return the process-wide instance")
}

func TestNew_RejectsDuplicateAlias(t *testing.T) {
	data := `{
		"skills": [
			{"id": "javascript", "display": "JavaScript", "aliases": ["js"]},
			{"id": "java", "display": "Java", "aliases": ["js"]}
		],
		"section_headings": {"skills": ["skills"], "experience": ["experience"]}
	}`

	_, err := New([]byte(data))
	require.Error(t, err)
	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Contains(t, loadErr.Error(), "claimed by both")
}

func TestNew_RejectsUnknownRelatedID(t *testing.T) {
	data := `{
		"skills": [
			{"id": "python", "display": "Python", "aliases": ["python"], "related": ["fortran"]}
		],
		"section_headings": {"skills": ["skills"], "experience": ["experience"]}
	}`

	_, err := New([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown id")
}

func TestNew_RejectsSchemaViolation(t *testing.T) {
	data := `{"skills": []}`

	_, err := New([]byte(data))
	require.Error(t, err)
	_, ok := err.(*LoadError)
	assert.True(t, ok)
}

func TestCanonicalize_AliasClosure(t *testing.T) {
	tax := MustDefault()

	tests := []struct {
		name    string
		aliases []string
		want    string
	}{
		{name: "javascript variants", aliases: []string{"js", "JavaScript", "ECMAScript"}, want: "javascript"},
		{name: "kubernetes variants", aliases: []string{"k8s", "Kubernetes", "KUBERNETES"}, want: "kubernetes"},
		{name: "machine learning variants", aliases: []string{"ml", "machine learning", "Machine Learning"}, want: "machine-learning"},
		{name: "node variants", aliases: []string{"node.js", "NodeJS", "Node JS"}, want: "node.js"},
		{name: "gcp variants", aliases: []string{"gcp", "Google Cloud", "google cloud platform"}, want: "gcp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, alias := range tt.aliases {
				id, ok := tax.Canonicalize(alias)
				require.True(t, ok, "alias %q should resolve", alias)
				assert.Equal(t, tt.want, id, "alias %q", alias)
			}
		})
	}
}

func TestCanonicalize_UnknownSurface(t *testing.T) {
	tax := MustDefault()

	_, ok := tax.Canonicalize("underwater basket weaving")
	assert.False(t, ok)
	_, ok = tax.Canonicalize("")
	assert.False(t, ok)
}

func TestHeadingRole_Classification(t *testing.T) {
	tax := MustDefault()

	tests := []struct {
		heading string
		want    types.SectionRole
	}{
		{"Skills", types.RoleSkills},
		{"TECHNICAL SKILLS", types.RoleSkills},
		{"Core Competencies", types.RoleSkills},
		{"Areas of Expertise", types.RoleSkills},
		{"Tools & Technologies", types.RoleSkills},
		{"Experience", types.RoleExperience},
		{"Work Experience", types.RoleExperience},
		{"PROFESSIONAL EXPERIENCE", types.RoleExperience},
		{"Employment History", types.RoleExperience},
		{"Education", types.RoleOther},
		{"Summary", types.RoleOther},
		{"Certifications", types.RoleOther},
		{"", types.RoleOther},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.HeadingRole(tt.heading))
		})
	}
}

func TestAdjacent_BothDirections(t *testing.T) {
	tax := MustDefault()

	assert.True(t, tax.Adjacent("machine-learning", "python"))
	assert.True(t, tax.Adjacent("python", "machine-learning"))
	assert.True(t, tax.Adjacent("docker", "kubernetes"))
	assert.False(t, tax.Adjacent("python", "photoshop"))
	assert.False(t, tax.Adjacent("figma", "terraform"))
}

func TestDisplay_PreferredSurfaceForm(t *testing.T) {
	tax := MustDefault()

	assert.Equal(t, "Machine Learning", tax.Display("machine-learning"))
	assert.Equal(t, "Node.js", tax.Display("node.js"))
	assert.Equal(t, "PostgreSQL", tax.Display("postgresql"))
	assert.Equal(t, "made-up-skill", tax.Display("made-up-skill"))
}

func TestIsHeadingPhrase(t *testing.T) {
	tax := MustDefault()

	assert.True(t, tax.IsHeadingPhrase("Technical Skills"))
	assert.True(t, tax.IsHeadingPhrase("Work Experience"))
	assert.True(t, tax.IsHeadingPhrase("Education"))
	assert.True(t, tax.IsHeadingPhrase("Publications & Awards"))
	assert.False(t, tax.IsHeadingPhrase("Jane Doe"))
	assert.False(t, tax.IsHeadingPhrase("Built data platforms at scale"))
	assert.False(t, tax.IsHeadingPhrase(""))
}
