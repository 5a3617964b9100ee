package source

import (
	"errors"
	"fmt"
)

// UnavailableError reports that a source could not be fetched or parsed.
// Callers surface it as "no data" and never run the pipeline on it.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source: %s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is, or wraps, an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

func unavailable(location string, err error) error {
	return &UnavailableError{Source: location, Err: err}
}
