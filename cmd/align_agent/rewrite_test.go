package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite_EndToEnd(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)
	outPath := filepath.Join(t.TempDir(), "tailored.txt")

	stdout, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully rewrote resume")
	assert.Contains(t, stdout, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	tailored := string(data)

	assert.Contains(t, tailored, "Python, SQL, Docker, Photoshop")
	assert.Contains(t, tailored, "Deployed services on AWS with Kubernetes; experience with Docker")
	assert.Contains(t, tailored, "Built data pipelines in Python for nightly loads")
}

func TestRewrite_IsIdempotent(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)
	dir := t.TempDir()
	firstPath := filepath.Join(dir, "first.txt")
	secondPath := filepath.Join(dir, "second.txt")

	_, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath, "--out", firstPath)
	require.NoError(t, err)

	stdout, err := executeCommand(t, "rewrite", "--resume", firstPath, "--jd", jdPath, "--out", secondPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Applied: 0 operation(s)")

	first, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	second, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRewrite_FromPlanFile(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.json")
	outPath := filepath.Join(dir, "tailored.txt")

	_, err := executeCommand(t, "plan", "--resume", resumePath, "--jd", jdPath, "--out", planPath)
	require.NoError(t, err)

	_, err = executeCommand(t, "rewrite", "--resume", resumePath, "--plan", planPath, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Python, SQL, Docker, Photoshop")
	assert.Contains(t, string(data), "; experience with Docker")
}

func TestRewrite_CustomTemplate(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)
	outPath := filepath.Join(t.TempDir(), "tailored.txt")

	_, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath, "--out", outPath,
		"--template", " (worked with {skill})")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Deployed services on AWS with Kubernetes (worked with Docker)")
}

func TestRewrite_RequiresOut(t *testing.T) {
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	_, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"out" not set`)
}

func TestRewrite_PlanAndJDMutuallyExclusive(t *testing.T) {
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	_, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath,
		"--plan", "plan.json", "--out", filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRewrite_LLMRequiresAPIKey(t *testing.T) {
	clearAPIKeys(t)
	resumePath := writeTestResume(t)
	jdPath := writeTestJD(t)

	_, err := executeCommand(t, "rewrite", "--resume", resumePath, "--jd", jdPath,
		"--out", filepath.Join(t.TempDir(), "out.txt"), "--llm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
