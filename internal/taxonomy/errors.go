package taxonomy

import "fmt"

// LoadError represents a failure loading or validating taxonomy data
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load failed: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
