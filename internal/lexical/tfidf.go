// Package lexical scores the term overlap between a resume and a job
// description: TF-IDF vectors over the shared vocabulary of both texts,
// compared by cosine similarity.
package lexical

import (
	"math"
	"sort"

	"github.com/jonathan/resume-align/internal/textproc"
)

// Vector is a sparse term-weight vector keyed by stemmed term.
type Vector map[string]float64

// Score computes the lexical similarity of two texts, deterministic and
// bounded to [0,1]. If either text reduces to an empty term set after
// stopword removal and stemming, the score is 0.0 by definition, not an
// error.
func Score(resumeText, jdText string) float64 {
	resumeTerms := textproc.Terms(resumeText)
	jdTerms := textproc.Terms(jdText)
	if len(resumeTerms) == 0 || len(jdTerms) == 0 {
		return 0.0
	}

	resumeVec, jdVec := BuildVectors(resumeTerms, jdTerms)
	return Cosine(resumeVec, jdVec)
}

// BuildVectors computes TF-IDF vectors for two term lists over their shared
// two-document vocabulary. Inverse document frequency is smoothed,
// ln((1+n)/(1+df))+1 with n=2, so terms appearing in both documents still
// carry weight. Cosine similarity is scale-invariant, so vectors are left
// unnormalized.
func BuildVectors(a, b []string) (Vector, Vector) {
	countsA := termCounts(a)
	countsB := termCounts(b)

	vecA := make(Vector, len(countsA))
	vecB := make(Vector, len(countsB))

	for term, tf := range countsA {
		vecA[term] = tf * idf(term, countsA, countsB)
	}
	for term, tf := range countsB {
		vecB[term] = tf * idf(term, countsA, countsB)
	}
	return vecA, vecB
}

func termCounts(terms []string) map[string]float64 {
	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}

func idf(term string, docA, docB map[string]float64) float64 {
	df := 0
	if _, ok := docA[term]; ok {
		df++
	}
	if _, ok := docB[term]; ok {
		df++
	}
	return math.Log(3.0/(1.0+float64(df))) + 1.0
}

// TermWeight pairs a vocabulary term with its combined weight across both
// vectors.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// MatchingTerms returns the terms present in both vectors, strongest first,
// at most n entries. Ties break alphabetically so output is deterministic.
func MatchingTerms(a, b Vector, n int) []TermWeight {
	var matches []TermWeight
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			matches = append(matches, TermWeight{Term: term, Weight: wa * wb})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Weight != matches[j].Weight {
			return matches[i].Weight > matches[j].Weight
		}
		return matches[i].Term < matches[j].Term
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
