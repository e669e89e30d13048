package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL_Success(t *testing.T) {
	server := serveHTML(t, `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Job Title</h1>
<p>Job description</p>
</main>
<footer>Footer</footer>
</body>
</html>`)

	cleaned, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Contains(t, cleaned, "Job Title")
	assert.Contains(t, cleaned, "Job description")
	assert.NotContains(t, cleaned, "Nav")
	assert.NotContains(t, cleaned, "Footer")

	require.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, "unknown", metadata.Platform)
	assert.NotEmpty(t, metadata.ID)
	assert.Len(t, metadata.Hash, 64)
	// No API key, so enrichment never ran.
	assert.Empty(t, metadata.Title)
}

func TestIngestFromURL_RealBoardFixture(t *testing.T) {
	html, err := os.ReadFile("testdata/greenhouse_posting.html")
	require.NoError(t, err)

	server := serveHTML(t, string(html))

	cleaned, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Contains(t, cleaned, "Senior Software Engineer")
	assert.Contains(t, cleaned, "About the Role")
	assert.Contains(t, cleaned, "Docker and Kubernetes")
	// Navigation, application form, and EEO boilerplate are stripped.
	assert.NotContains(t, cleaned, "Careers | About")
	assert.NotContains(t, cleaned, "Apply now")
	assert.NotContains(t, cleaned, "equal opportunity")
	assert.NotContains(t, cleaned, "analytics")

	require.NotNil(t, metadata)
	assert.Equal(t, "unknown", metadata.Platform)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := IngestFromURL(context.Background(), tt.urlStr, URLOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestIngestFromURL_NetworkError(t *testing.T) {
	// Closed server, connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := IngestFromURL(context.Background(), url, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}
