package rewrite

import "fmt"

// ReasonNoTargetSection marks operations skipped at plan time because the
// document offers no section or bullet the skill could be injected into.
const ReasonNoTargetSection = "NoTargetSection"

// NoTargetSectionError reports that an operation has no usable target in the
// document. Planning records this per operation as a skip; Apply returns it
// only when a plan is replayed against a document whose shape no longer
// matches the one it was computed from.
type NoTargetSectionError struct {
	Skill string
}

func (e *NoTargetSectionError) Error() string {
	return fmt.Sprintf("no target section for skill %q", e.Skill)
}

// APICallError represents an error calling the LLM rewriter API.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
