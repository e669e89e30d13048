// Package pipeline provides the high-level orchestration for one analysis
// request: skill extraction plus the lexical and semantic engines run as
// parallel branches, joined by the scoring aggregator.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-align/internal/embedding"
	"github.com/jonathan/resume-align/internal/lexical"
	"github.com/jonathan/resume-align/internal/logger"
	"github.com/jonathan/resume-align/internal/scoring"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
)

// AnalyzeOptions holds configuration for one analysis run
type AnalyzeOptions struct {
	// Weights blends the two engine scores
	Weights scoring.Weights
	// Provider is the embedding backend; nil degrades to lexical-only
	// scoring from the start
	Provider embedding.Provider
}

// lexicalBranchResult holds the outputs of the extraction and TF-IDF branch
type lexicalBranchResult struct {
	score          float64
	resumeMentions []types.SkillMention
	jdSkills       []string
}

// semanticBranchResult holds the embedding similarity outcome
type semanticBranchResult struct {
	score    float64
	degraded bool
}

// Analyze scores one resume against one job description. The lexical and
// semantic branches have no data dependency and run concurrently; the
// aggregator joins them. An unavailable embedding backend degrades the
// result to lexical-only scoring instead of failing the request. The
// document is never mutated.
func Analyze(ctx context.Context, doc *types.Document, jdText string, tax *taxonomy.Taxonomy, opts AnalyzeOptions) (*types.SimilarityScore, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score weights: %w", err)
	}

	resumeText := doc.Text()

	g, gCtx := errgroup.WithContext(ctx)

	var lexResult lexicalBranchResult
	var semResult semanticBranchResult
	var lexMu, semMu sync.Mutex // Protect result assignments

	g.Go(func() error {
		result := runLexicalBranch(doc, resumeText, jdText, tax)
		lexMu.Lock()
		lexResult = result
		lexMu.Unlock()
		return nil
	})

	g.Go(func() error {
		result, err := runSemanticBranch(gCtx, opts.Provider, resumeText, jdText)
		if err != nil {
			return fmt.Errorf("semantic branch failed: %w", err)
		}
		semMu.Lock()
		semResult = result
		semMu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	score := scoring.Aggregate(scoring.Input{
		LexicalScore:     lexResult.score,
		SemanticScore:    semResult.score,
		Degraded:         semResult.degraded,
		ResumeMentions:   lexResult.resumeMentions,
		JDSkills:         lexResult.jdSkills,
		HasSkillsSection: len(doc.SectionsWithRole(types.RoleSkills)) > 0,
	}, opts.Weights, tax)

	logger.Debug().
		Int("combined", score.CombinedScore).
		Float64("lexical", score.LexicalScore).
		Float64("semantic", score.SemanticScore).
		Bool("degraded", score.Degraded).
		Int("matched", len(score.MatchedSkills)).
		Int("missing", len(score.MissingSkills)).
		Msg("analysis complete")

	return &score, nil
}

// runLexicalBranch extracts skill mentions from both sides and computes the
// TF-IDF cosine score. Pure computation, no I/O.
func runLexicalBranch(doc *types.Document, resumeText, jdText string, tax *taxonomy.Taxonomy) lexicalBranchResult {
	mentions := tax.ExtractFromDocument(doc)
	jdSkills := taxonomy.UniqueSkills(tax.Extract(jdText))

	logger.Debug().
		Int("resume_mentions", len(mentions)).
		Int("jd_skills", len(jdSkills)).
		Msg("extracted skills")

	return lexicalBranchResult{
		score:          lexical.Score(resumeText, jdText),
		resumeMentions: mentions,
		jdSkills:       jdSkills,
	}
}

// runSemanticBranch embeds both texts concurrently and compares them. An
// UnavailableError from the provider degrades the branch instead of
// failing; embedding is never retried here, the provider owns that policy.
func runSemanticBranch(ctx context.Context, provider embedding.Provider, resumeText, jdText string) (semanticBranchResult, error) {
	if provider == nil {
		logger.Warn().Msg("no embedding provider configured, degrading to lexical-only scoring")
		return semanticBranchResult{degraded: true}, nil
	}

	// The provider contract requires non-empty text; an empty side is a
	// defined zero score, not a degraded one.
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return semanticBranchResult{}, nil
	}

	var resumeVec, jdVec []float32
	inner, innerCtx := errgroup.WithContext(ctx)

	inner.Go(func() error {
		vec, err := provider.Embed(innerCtx, resumeText)
		if err != nil {
			return fmt.Errorf("embedding resume: %w", err)
		}
		resumeVec = vec
		return nil
	})

	inner.Go(func() error {
		vec, err := provider.Embed(innerCtx, jdText)
		if err != nil {
			return fmt.Errorf("embedding job description: %w", err)
		}
		jdVec = vec
		return nil
	})

	if err := inner.Wait(); err != nil {
		if embedding.IsUnavailable(err) {
			logger.Warn().Err(err).Msg("embedding unavailable, degrading to lexical-only scoring")
			return semanticBranchResult{degraded: true}, nil
		}
		return semanticBranchResult{}, err
	}

	sim, err := embedding.Cosine(resumeVec, jdVec)
	if err != nil {
		return semanticBranchResult{}, fmt.Errorf("comparing embeddings: %w", err)
	}
	return semanticBranchResult{score: sim}, nil
}
