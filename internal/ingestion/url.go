package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-align/internal/fetch"
	"github.com/jonathan/resume-align/internal/logger"
)

var (
	// ErrFetchFailed wraps HTTP-level failures while retrieving a posting.
	ErrFetchFailed = errors.New("job posting fetch failed")
	// ErrExtractFailed wraps HTML parsing failures.
	ErrExtractFailed = errors.New("content extraction failed")
)

// URLOptions configures URL ingestion.
type URLOptions struct {
	// APIKey enables LLM metadata enrichment when non-empty.
	APIKey string
	// UseBrowser allows the headless browser fallback for script-rendered
	// boards. Requires Chrome on the host.
	UseBrowser bool
	// BrowserTimeout bounds the render; zero uses the fetch default.
	BrowserTimeout time.Duration
	// Fetch overrides HTTP options; nil uses the fetch defaults.
	Fetch *fetch.Options
}

// IngestFromURL retrieves a job posting, extracts its description with
// platform-aware selectors, and returns cleaned text plus metadata. When the
// extracted text is too short and opts.UseBrowser is set, the page is
// re-rendered in a headless browser and the longer extraction wins.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	logger.Debug().Str("url", urlStr).Str("platform", string(platform)).Msg("ingesting job posting")

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	contentSelectors := fetch.ContentSelectors(platform)
	noiseSelectors := fetch.NoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		logger.Debug().
			Int("chars", len(text)).
			Int("min", fetch.MinContentLength).
			Msg("extracted text too short, trying browser render")

		rendered, renderErr := fetch.Render(ctx, urlStr, opts.BrowserTimeout)
		if renderErr != nil {
			logger.Warn().Err(renderErr).Msg("browser render failed, keeping HTTP content")
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil && len(browserText) > len(text) {
			text = browserText
		}
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)

	if opts.APIKey != "" {
		jd, enrichErr := EnrichWithLLM(ctx, cleaned, opts.APIKey)
		if enrichErr != nil {
			logger.Warn().Err(enrichErr).Msg("metadata enrichment failed, keeping basic metadata")
		} else {
			metadata.Title = jd.Title
			metadata.Company = jd.Company
			metadata.Location = jd.Location
			metadata.Seniority = jd.Seniority
		}
	}

	logger.Debug().
		Str("id", metadata.ID).
		Int("chars", len(cleaned)).
		Msg("job posting ingested")
	return cleaned, metadata, nil
}
