package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound also covers ownership mismatches on guarded mutations, so a
	// non-owner cannot tell a foreign article from a missing one.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
)

// ConflictError reports a unique constraint violation on a single field
// (username, email or slug).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + " has already been taken" }

// ValidationError carries field-keyed messages for structurally invalid input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Err returns nil when no field failed.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// UnavailableError hides a store failure behind ErrUnavailable. The cause is
// kept for logs and is not exposed through Unwrap.
type UnavailableError struct {
	cause error
}

func Unavailable(cause error) error {
	return &UnavailableError{cause: cause}
}

func (e *UnavailableError) Error() string { return ErrUnavailable.Error() }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func (e *UnavailableError) Cause() error { return e.cause }
