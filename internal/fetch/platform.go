package fetch

import (
	"net/url"
	"strings"
)

// Platform identifies a known job board.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS.
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS.
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS.
	PlatformWorkday Platform = "workday"
	// PlatformLinkedIn is a LinkedIn job page.
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is an Indeed job page.
	PlatformIndeed Platform = "indeed"
	// PlatformUnknown is any unrecognized host.
	PlatformUnknown Platform = "unknown"
)

// profile describes how to find the description on one platform: which hosts
// identify it, where the description lives, and what to strip before reading.
type profile struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var profiles = []profile{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{
			".apply-section",
			".lever-application-form",
			".posting-apply",
		},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content: []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{
			"[data-automation-id='applyButton']",
			".application-section",
		},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content: []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description__content",
		},
		noise: []string{
			".top-card-layout__cta-container",
			".similar-jobs",
			".jobs-ppc-criteria",
		},
	},
	{
		platform: PlatformIndeed,
		hosts:    []string{"indeed.com"},
		content: []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
			".jobsearch-jobDescriptionText",
		},
		noise: []string{
			"#applyButtonLinkContainer",
			".jobsearch-OtherJobMatchingCard",
			".icl-Callout",
		},
	},
}

// Application forms, EEO boilerplate, and share widgets pollute the
// description on every board.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host. Subdomains count,
// so boards.greenhouse.io and jobs.lever.co resolve like their parent hosts.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, p := range profiles {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the description selectors for a platform, falling
// back to the generic job posting set for unrecognized boards.
func ContentSelectors(platform Platform) []string {
	for _, p := range profiles {
		if p.platform == platform {
			return p.content
		}
	}
	return JobPostingSelectors()
}

// NoiseSelectors returns the exclusion selectors for a platform. The common
// set applies everywhere; recognized platforms add their own.
func NoiseSelectors(platform Platform) []string {
	selectors := make([]string, 0, len(commonNoise)+8)
	selectors = append(selectors, commonNoise...)
	for _, p := range profiles {
		if p.platform == platform {
			selectors = append(selectors, p.noise...)
			break
		}
	}
	return selectors
}
