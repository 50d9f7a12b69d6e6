// Package apperror defines the error taxonomy shared by the storage, service
// and handler layers.
//
// Every error produced here is a *DatabaseError. A DatabaseError always
// matches ErrDatabase under errors.Is, and additionally matches the sentinel
// stored in Err, so callers can test for the broad kind or the specific one:
//
//	errors.Is(err, apperror.ErrDatabase)     // any DatabaseError
//	errors.Is(err, apperror.ErrInvalidInput) // bad input rejected before storage
//	errors.Is(err, apperror.ErrNotFound)     // no row with that id
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrDatabase     = errors.New("database error")
	ErrInvalidInput = errors.New("invalid database input")
	ErrNotFound     = errors.New("not found")
)

// DatabaseError carries a human-readable message alongside the sentinel that
// classifies it.
type DatabaseError struct {
	Err     error  // classifying sentinel
	Message string // shown to the user as-is
	Field   string // optional: input field that caused the error
}

func (e *DatabaseError) Error() string {
	return e.Message
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Is reports every DatabaseError as an ErrDatabase. Matching against the
// specific sentinel goes through Unwrap.
func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

// InvalidInput returns the error kind used when a record fails validation at
// construction time (the InvalidDatabaseInputError of the domain).
func InvalidInput(field, message string) *DatabaseError {
	return &DatabaseError{
		Err:     ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NotFound reports a lookup miss. id is formatted with %v so callers can pass
// either the parsed integer or the raw form value that failed to parse.
func NotFound(resource string, id any) *DatabaseError {
	return &DatabaseError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}
