package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-align/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArtifacts(t *testing.T, dir string) (string, *ingestion.Metadata) {
	t.Helper()

	textFiles, err := filepath.Glob(filepath.Join(dir, "*.jd.txt"))
	require.NoError(t, err)
	require.Len(t, textFiles, 1)
	text, err := os.ReadFile(textFiles[0])
	require.NoError(t, err)

	metaFiles, err := filepath.Glob(filepath.Join(dir, "*.meta.json"))
	require.NoError(t, err)
	require.Len(t, metaFiles, 1)
	metaData, err := os.ReadFile(metaFiles[0])
	require.NoError(t, err)

	var meta ingestion.Metadata
	require.NoError(t, json.Unmarshal(metaData, &meta))
	return string(text), &meta
}

func TestIngestJD_FromTextFile(t *testing.T) {
	raw := "Senior  Platform   Engineer\r\n\r\n\r\nRequirements:\r\n- Docker\r\n"
	srcPath := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte(raw), 0644))
	outDir := t.TempDir()

	stdout, err := executeCommand(t, "ingest-jd", "--text-file", srcPath, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully ingested job description")
	assert.Contains(t, stdout, "Cleaned text:")
	assert.Contains(t, stdout, "Metadata:")

	text, meta := readArtifacts(t, outDir)
	assert.Equal(t, "Senior Platform Engineer\n\nRequirements:\n- Docker", text)

	_, err = uuid.Parse(meta.ID)
	assert.NoError(t, err)
	assert.Len(t, meta.Hash, 64)
	assert.Empty(t, meta.URL)
	assert.Empty(t, meta.Title)
}

func TestIngestJD_FromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Home | Careers</nav>
			<main><h1>Data Engineer</h1><p>You will build pipelines with Python and SQL.</p></main>
			<footer>All rights reserved</footer>
		</body></html>`))
	}))
	t.Cleanup(server.Close)
	outDir := t.TempDir()

	_, err := executeCommand(t, "ingest-jd", "--url", server.URL, "--out", outDir)
	require.NoError(t, err)

	text, meta := readArtifacts(t, outDir)
	assert.Contains(t, text, "Data Engineer")
	assert.Contains(t, text, "pipelines with Python and SQL")
	assert.NotContains(t, text, "Careers")
	assert.Equal(t, server.URL, meta.URL)
	assert.Equal(t, "unknown", meta.Platform)
}

func TestIngestJD_RequiresSource(t *testing.T) {
	_, err := executeCommand(t, "ingest-jd", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --text-file or --url must be provided")
}

func TestIngestJD_SourcesMutuallyExclusive(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte("text"), 0644))

	_, err := executeCommand(t, "ingest-jd", "--text-file", srcPath, "--url", "https://example.com/job", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestIngestJD_EnrichRequiresAPIKey(t *testing.T) {
	clearAPIKeys(t)
	srcPath := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte("Senior Engineer role"), 0644))

	_, err := executeCommand(t, "ingest-jd", "--text-file", srcPath, "--out", t.TempDir(), "--enrich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
