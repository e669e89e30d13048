package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://lever.co/jobs/123", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://www.linkedin.com/jobs/view/3791234567", PlatformLinkedIn},
		{"https://de.indeed.com/viewjob?jk=abc123", PlatformIndeed},
		{"https://www.indeed.com/viewjob?jk=abc123", PlatformIndeed},
		{"https://example.com/jobs", PlatformUnknown},
		{"https://careers.example.io/senior-engineer", PlatformUnknown},
		// A suffix in the path must not trigger detection.
		{"https://example.com/greenhouse.io/jobs", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors_KnownPlatforms(t *testing.T) {
	assert.Contains(t, ContentSelectors(PlatformGreenhouse), ".job__description.body")
	assert.Contains(t, ContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, ContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Contains(t, ContentSelectors(PlatformLinkedIn), ".show-more-less-html__markup")
	assert.Contains(t, ContentSelectors(PlatformIndeed), "#jobDescriptionText")
}

func TestContentSelectors_UnknownFallsBackToGeneric(t *testing.T) {
	selectors := ContentSelectors(PlatformUnknown)
	assert.Contains(t, selectors, ".job-description")
	assert.Contains(t, selectors, "main")
}

func TestNoiseSelectors_IncludeCommonSet(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLever, PlatformUnknown} {
		selectors := NoiseSelectors(platform)
		assert.Contains(t, selectors, "form")
		assert.Contains(t, selectors, "#application-form")
		assert.Contains(t, selectors, ".cookie-banner")
	}
}

func TestNoiseSelectors_PlatformSpecific(t *testing.T) {
	assert.Contains(t, NoiseSelectors(PlatformGreenhouse), ".voluntary-self-id")
	assert.Contains(t, NoiseSelectors(PlatformLever), ".posting-apply")
	assert.Contains(t, NoiseSelectors(PlatformWorkday), "[data-automation-id='applyButton']")
	assert.NotContains(t, NoiseSelectors(PlatformUnknown), ".voluntary-self-id")
}
