// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or invalid input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an absent entity or a denied access check. Both map to
	// the same error so callers cannot probe for existence.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation, e.g. duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrDependency marks a failure in an external collaborator (mailer, blob store).
	ErrDependency = errors.New("dependency failure")
)

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func Conflict(what string) error {
	return fmt.Errorf("%s: %w", what, ErrConflict)
}

func Dependency(what string, err error) error {
	return fmt.Errorf("%s: %v: %w", what, err, ErrDependency)
}
