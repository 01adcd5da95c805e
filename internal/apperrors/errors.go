package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrUnresolvedMirror indicates that a correction posting could not be placed because
// the mirror or correction counterpart account does not exist.
var ErrUnresolvedMirror = errors.New("mirror account could not be resolved")

// ErrTokenInvalid indicates an unknown or already redeemed invite token.
var ErrTokenInvalid = errors.New("invite token is invalid")

// ErrTransient indicates a retriable storage conflict that exhausted its retry budget.
var ErrTransient = errors.New("transient storage conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause, for
// repository plumbing failures that have no dedicated sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
