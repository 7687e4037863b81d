package domain

import (
	"errors"
	"fmt"
)

// ErrUserNotFound marks an update for a user that is absent from the roster
// store, typically because the roster changed between read and write.
var ErrUserNotFound = errors.New("user not found in roster")

// FetchError reports a failed retrieval for one day of a requested range.
// A single failed day aborts the whole range: matching against a partial
// alert set would silently under-report, so nothing downstream runs.
type FetchError struct {
	Day string // DD.MM.YYYY, empty when the failure is not tied to one day
	Err error
}

func (e *FetchError) Error() string {
	if e.Day == "" {
		return fmt.Sprintf("fetch alerts: %v", e.Err)
	}
	return fmt.Sprintf("fetch alerts for %s: %v", e.Day, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UpdateError reports a failed last-alert write for a single user. It is
// isolated to that user: the rest of the batch keeps processing.
type UpdateError struct {
	Name string
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update last alert for %q: %v", e.Name, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
