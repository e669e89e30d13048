package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-align/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePlan(t *testing.T, out string) *types.RewritePlan {
	t.Helper()
	var plan types.RewritePlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	return &plan
}

func opStrategies(plan *types.RewritePlan, skill string) []types.InsertStrategy {
	var strategies []types.InsertStrategy
	for _, op := range plan.Ops {
		if op.Skill == skill {
			strategies = append(strategies, op.Strategy)
		}
	}
	return strategies
}

func findOp(t *testing.T, plan *types.RewritePlan, skill string, strategy types.InsertStrategy) types.RewriteOp {
	t.Helper()
	for _, op := range plan.Ops {
		if op.Skill == skill && op.Strategy == strategy {
			return op
		}
	}
	t.Fatalf("no %s operation for skill %q in plan", strategy, skill)
	return types.RewriteOp{}
}

func TestPlan_FromJDFile(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	out, err := executeCommand(t, "plan", "--resume", resumePath, "--jd", jdPath)
	require.NoError(t, err)

	plan := decodePlan(t, out)
	_, err = uuid.Parse(plan.ID)
	assert.NoError(t, err, "plan ID should be a UUID")
	assert.False(t, plan.CreatedAt.IsZero())

	// docker lands in the skills list and in the adjacent AWS/Kubernetes
	// bullet; photoshop has no adjacent bullet, so only the skills list.
	assert.Equal(t, 3, plan.Planned)
	assert.Equal(t, 0, plan.Skipped)

	dockerBullet := findOp(t, plan, "docker", types.StrategyBulletIntegration)
	assert.Equal(t, types.RoleExperience, dockerBullet.TargetRole)
	assert.Equal(t, types.OpPlanned, dockerBullet.Status)
	assert.GreaterOrEqual(t, dockerBullet.SectionIndex, 0)

	dockerList := findOp(t, plan, "docker", types.StrategySkillsListAppend)
	assert.Equal(t, types.RoleSkills, dockerList.TargetRole)

	assert.Equal(t, []types.InsertStrategy{types.StrategySkillsListAppend}, opStrategies(plan, "photoshop"))
}

func TestPlan_FromScoreFile(t *testing.T) {
	resumePath := writeTestResume(t)
	scorePath := filepath.Join(t.TempDir(), "score.json")
	scoreJSON := `{
		"lexical_score": 0.42,
		"semantic_score": 0,
		"combined_score": 17,
		"matched_skills": ["python"],
		"missing_skills": ["docker", "photoshop"],
		"section_coverage": {"SKILLS": 1, "EXPERIENCE": 1},
		"degraded": true
	}`
	require.NoError(t, os.WriteFile(scorePath, []byte(scoreJSON), 0644))

	out, err := executeCommand(t, "plan", "--resume", resumePath, "--score", scorePath)
	require.NoError(t, err)

	plan := decodePlan(t, out)
	assert.Equal(t, 3, plan.Planned)
	assert.ElementsMatch(t,
		[]types.InsertStrategy{types.StrategySkillsListAppend, types.StrategyBulletIntegration},
		opStrategies(plan, "docker"))
	assert.Equal(t, []types.InsertStrategy{types.StrategySkillsListAppend}, opStrategies(plan, "photoshop"))
}

func TestPlan_RejectsMalformedScoreFile(t *testing.T) {
	resumePath := writeTestResume(t)
	scorePath := filepath.Join(t.TempDir(), "score.json")
	require.NoError(t, os.WriteFile(scorePath, []byte(`{"combined_score": "high"}`), 0644))

	_, err := executeCommand(t, "plan", "--resume", resumePath, "--score", scorePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid score file")
}

func TestPlan_ScoreAndJDMutuallyExclusive(t *testing.T) {
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	_, err := executeCommand(t, "plan", "--resume", resumePath, "--jd", jdPath, "--score", "score.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestPlan_RequiresScoreOrJobSource(t *testing.T) {
	resumePath := writeTestResume(t)

	_, err := executeCommand(t, "plan", "--resume", resumePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --jd, --jd-url or --score")
}

func TestPlan_MaxInjectionsCapsOperations(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	out, err := executeCommand(t, "plan", "--resume", resumePath, "--jd", jdPath, "--max-injections", "1")
	require.NoError(t, err)

	plan := decodePlan(t, out)
	require.Len(t, plan.Ops, 2)
	assert.Equal(t, 2, plan.Planned)
	for _, op := range plan.Ops {
		assert.Equal(t, "docker", op.Skill, "capped plan should only touch the top missing skill")
	}
}

func TestPlan_WritesPlanFile(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)
	planPath := filepath.Join(t.TempDir(), "plan.json")

	_, err := executeCommand(t, "plan", "--resume", resumePath, "--jd", jdPath, "--out", planPath)
	require.NoError(t, err)

	data, err := os.ReadFile(planPath)
	require.NoError(t, err)

	var plan types.RewritePlan
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, 3, plan.Planned)
}
