package embedding

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity of two embedding vectors, clamped to
// [0,1]. Embedding backends occasionally produce slightly negative
// similarities for unrelated texts; those clamp to 0.0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("vectors must be non-empty")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0.0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0.0, nil
	}
	if sim > 1 {
		return 1.0, nil
	}
	return sim, nil
}
