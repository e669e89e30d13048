package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-align/internal/llm"
	"github.com/jonathan/resume-align/internal/prompts"
)

// BulletRewriter supplies the text appended by bullet-integration operations.
// Implementations return a short trailing clause that works the skill into
// the bullet; the original bullet text is never replaced.
type BulletRewriter interface {
	RewriteBullet(ctx context.Context, bullet, skill string) (string, error)
}

// LLMRewriter asks the configured LLM for a tailored trailing clause instead
// of the stock template.
type LLMRewriter struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMRewriter wraps an LLM client as a BulletRewriter. An empty tier
// defaults to TierLite; suffix generation is short-form work.
func NewLLMRewriter(client llm.Client, tier llm.ModelTier) *LLMRewriter {
	if tier == "" {
		tier = llm.TierLite
	}
	return &LLMRewriter{client: client, tier: tier}
}

// RewriteBullet generates the trailing clause for one bullet and skill.
func (r *LLMRewriter) RewriteBullet(ctx context.Context, bullet, skill string) (string, error) {
	template := prompts.MustGet("rewrite.json", "bullet-suffix")
	prompt := prompts.Format(template, map[string]string{
		"Bullet": bullet,
		"Skill":  skill,
	})

	text, err := r.client.GenerateContent(ctx, prompt, r.tier)
	if err != nil {
		return "", &APICallError{
			Message: fmt.Sprintf("failed to generate suffix for %q", skill),
			Cause:   err,
		}
	}
	return cleanResponse(text), nil
}

// cleanResponse strips markdown code fences and surrounding quotes from model
// output, leaving the plain clause.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if strings.HasPrefix(lines[0], "```") {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], "```") {
			lines = lines[:len(lines)-1]
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	text = strings.Trim(text, `"`)
	return strings.TrimSpace(text)
}
