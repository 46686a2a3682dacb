package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication classifies failures to obtain a bearer token.
	ErrAuthentication = errors.New("authentication failed")

	// ErrFetch classifies failures to retrieve the form document.
	ErrFetch = errors.New("fetch failed")

	// ErrSuperseded is returned to a caller whose load was overtaken by a
	// more recently started load or a reset.
	ErrSuperseded = errors.New("load superseded by a newer request")

	// ErrFormIDRequired is returned for an empty form ID.
	ErrFormIDRequired = errors.New("form ID is required")
)

// LoadError describes a failed load. Kind is ErrAuthentication or ErrFetch.
type LoadError struct {
	Kind   error
	FormID string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v for form %s: %v", e.Kind, e.FormID, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
