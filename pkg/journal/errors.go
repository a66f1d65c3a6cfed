package journal

import (
	"errors"
	"fmt"

	"tableflip.dev/diary/pkg/store"
)

// ValidationError rejects a mutation before the store is contacted.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("journal: %s must not be empty", e.Field)
}

// StoreError reports a failed store call, or a target missing from the
// cache.
type StoreError struct {
	Op  string
	ID  string
	Err error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("journal: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("journal: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// SyncError reports a failed bulk load.
type SyncError struct {
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("journal: load: %v", e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is caused by a missing entry.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
