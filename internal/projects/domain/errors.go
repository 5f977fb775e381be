package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("project not found")
	ErrNoZones        = errors.New("please define planting areas (zones) first")
	ErrProjectLocked  = errors.New("project is completed and can no longer be edited")
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrOffline        = errors.New("you appear to be offline, reconnect before saving your progress")
)

// ValidationError rejects a transition without changing state.
type ValidationError struct {
	Field   string
	PlantID string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// OfflineError is returned when the store cannot be reached before a save.
type OfflineError struct {
	Err error
}

func (e *OfflineError) Error() string {
	if e.Err == nil {
		return ErrOffline.Error()
	}
	return fmt.Sprintf("%s: %v", ErrOffline, e.Err)
}

func (e *OfflineError) Unwrap() error { return e.Err }

func (e *OfflineError) Is(target error) bool { return target == ErrOffline }

// PersistenceError wraps a store failure during create or update.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s project: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
