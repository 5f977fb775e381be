package domain

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable matches every IngestionError via errors.Is.
var ErrCatalogUnavailable = errors.New("plant catalog unavailable")

// IngestionError is returned when the catalog source could not be read after all attempts.
type IngestionError struct {
	Attempts   int
	StatusCode int
	Err        error
}

func (e *IngestionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("load catalog: %d attempt(s), last status %d: %v", e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("load catalog: %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

func (e *IngestionError) Is(target error) bool { return target == ErrCatalogUnavailable }
