package embedding

import (
	"errors"
	"fmt"
)

// UnavailableError represents a failure to reach the embedding backend.
// Callers treat it as a signal to degrade to lexical-only scoring rather
// than abort.
type UnavailableError struct {
	Provider ProviderName
	Message  string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding provider %s unavailable: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding provider %s unavailable: %s", e.Provider, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// IsUnavailable reports whether err is an UnavailableError anywhere in its
// chain.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
