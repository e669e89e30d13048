package docio

import "fmt"

// UnsupportedFormatError represents a container format the decoder or
// serializer cannot handle. It is fatal; there is no degraded mode for an
// unreadable container.
type UnsupportedFormatError struct {
	Mime string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Mime == "" {
		return "unsupported document format"
	}
	return fmt.Sprintf("unsupported document format: %s", e.Mime)
}

// MalformedDocumentError represents container bytes that claim a supported
// format but cannot be decoded into any fragments.
type MalformedDocumentError struct {
	Message string
	Cause   error
}

func (e *MalformedDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed document: %s", e.Message)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}
