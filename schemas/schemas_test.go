package schemas

import (
	"encoding/json"
	"testing"

	jsonvalidate "github.com/jonathan/resume-align/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemas_EmbeddedAndValidJSON(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{Taxonomy, SimilarityScore, RewritePlan}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &schemaObj))

			_, hasSchema := schemaObj["$schema"]
			_, hasType := schemaObj["type"]
			assert.True(t, hasSchema && hasType, "schema should declare $schema and type")
		})
	}
}

func TestGet_UnknownSchema(t *testing.T) {
	_, err := Get("nope.schema.json")
	assert.Error(t, err)
}

func TestValidate_SimilarityScore(t *testing.T) {
	valid := `{
		"lexical_score": 0.41,
		"semantic_score": 0.78,
		"combined_score": 63,
		"matched_skills": ["python", "sql"],
		"missing_skills": ["machine-learning"],
		"section_coverage": {"SKILLS": 2, "EXPERIENCE": 1},
		"degraded": false,
		"suggestions": ["Add Machine Learning to your skills section"]
	}`
	assert.NoError(t, Validate(SimilarityScore, valid))

	missingField := `{"lexical_score": 0.41}`
	err := Validate(SimilarityScore, missingField)
	require.Error(t, err)
	_, ok := err.(*jsonvalidate.ValidationError)
	assert.True(t, ok)

	outOfRange := `{
		"lexical_score": 1.41,
		"semantic_score": 0.78,
		"combined_score": 63,
		"matched_skills": [],
		"missing_skills": [],
		"section_coverage": {},
		"degraded": false
	}`
	assert.Error(t, Validate(SimilarityScore, outOfRange))
}

func TestValidate_RewritePlan(t *testing.T) {
	valid := `{
		"id": "3f1a9b52-31c8-4e9f-9a30-8f6f2df1a001",
		"created_at": "2025-11-02T10:00:00Z",
		"ops": [
			{
				"skill": "machine-learning",
				"display": "Machine Learning",
				"strategy": "skills-list-append",
				"target_role": "SKILLS",
				"section_index": 1,
				"block_index": 0,
				"status": "planned"
			},
			{
				"skill": "terraform",
				"display": "Terraform",
				"section_index": -1,
				"block_index": -1,
				"status": "skipped",
				"skip_reason": "no SKILLS section and no adjacent experience bullet"
			}
		],
		"planned": 1,
		"skipped": 1
	}`
	assert.NoError(t, Validate(RewritePlan, valid))

	badStrategy := `{
		"id": "x",
		"created_at": "2025-11-02T10:00:00Z",
		"ops": [
			{
				"skill": "sql",
				"display": "SQL",
				"strategy": "replace-run",
				"section_index": 0,
				"block_index": 0,
				"status": "planned"
			}
		],
		"planned": 1,
		"skipped": 0
	}`
	assert.Error(t, Validate(RewritePlan, badStrategy))
}

func TestValidate_Taxonomy(t *testing.T) {
	valid := `{
		"skills": [
			{"id": "python", "display": "Python", "aliases": ["python"], "related": []}
		],
		"section_headings": {
			"skills": ["skills"],
			"experience": ["experience"]
		}
	}`
	assert.NoError(t, Validate(Taxonomy, valid))

	noAliases := `{
		"skills": [
			{"id": "python", "display": "Python", "aliases": []}
		],
		"section_headings": {
			"skills": ["skills"],
			"experience": ["experience"]
		}
	}`
	assert.Error(t, Validate(Taxonomy, noAliases))
}
