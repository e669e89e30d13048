package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// Resume fixture: an all-caps-heading plain text resume with a skills list
// and experience bullets, the shape the text decoder expects.
const testResume = `JANE DOE
Backend engineer focused on data platforms

SKILLS
Python, SQL

EXPERIENCE
- Built data pipelines in Python for nightly loads
- Deployed services on AWS with Kubernetes
`

// Job description fixture: shares python with the resume, asks for docker
// (adjacent to the AWS/Kubernetes bullet) and photoshop (no adjacent skill,
// lands in the skills list).
const testJobDescription = `We are hiring a versatile platform engineer.

Requirements:
- Docker containers in production
- Python scripting for automation
- Photoshop for occasional marketing assets
`

func writeTestResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(testResume), 0644))
	return path
}

func writeTestJD(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte(testJobDescription), 0644))
	return path
}

// clearAPIKeys blanks the provider keys so scoring runs in the degraded
// lexical-only mode regardless of the local environment.
func clearAPIKeys(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
}

// resetCommandState restores every flag on every subcommand to its default
// so commands can be executed repeatedly within one test process.
func resetCommandState(t *testing.T) {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
}

// executeCommand runs the CLI in-process and captures stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommandState(t)

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	os.Stdout = old
	require.NoError(t, err)

	return buf.String(), execErr
}
