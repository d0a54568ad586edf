package service

import (
	"errors"
	"fitu/dashboard/internal/domain"
	"fmt"
)

var (
	ErrAuthRequired   = errors.New("authentication required")
	ErrInstructorOnly = errors.New("only instructor accounts can perform this action")
	ErrWriteFailed    = errors.New("write failed")
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned before any write when input is rejected.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// WriteFailure wraps a store error raised while creating, updating or deleting.
// It matches ErrWriteFailed with errors.Is.
type WriteFailure struct {
	Op  string
	Err error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

func (e *WriteFailure) Is(target error) bool {
	return target == ErrWriteFailed
}

func writeFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteFailure{Op: op, Err: err}
}

// requireInstructor checks that sess is a signed-in instructor.
func requireInstructor(sess domain.Session) error {
	if !sess.Authenticated() {
		return ErrAuthRequired
	}
	if !sess.IsInstructor() {
		return ErrInstructorOnly
	}
	return nil
}

func requireSession(sess domain.Session) error {
	if !sess.Authenticated() {
		return ErrAuthRequired
	}
	return nil
}
