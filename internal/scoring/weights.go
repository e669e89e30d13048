// Package scoring joins the lexical and semantic engine results into the
// final similarity score and skill gap report.
package scoring

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Weights blends the two engine scores. The pair must be convex: each
// weight in [0,1] and the two summing to 1, so the combined score stays a
// true weighted average.
type Weights struct {
	Lexical  float64 `json:"lexical" validate:"gte=0,lte=1"`
	Semantic float64 `json:"semantic" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard blend: 0.4 lexical, 0.6 semantic.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.4, Semantic: 0.6}
}

// Validate validates the Weights using the validator plus the convexity
// check the tags cannot express.
func (w Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}
	if math.Abs(w.Lexical+w.Semantic-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", w.Lexical+w.Semantic)
	}
	return nil
}
