// Package service contains the application services for tasks and auth.
package service

import "errors"

// ErrUnauthorized is returned by Login on any credential mismatch. Unknown
// email and wrong password are deliberately indistinguishable.
var ErrUnauthorized = errors.New("invalid credentials")

// ValidationError carries a user-facing message for malformed or missing
// input. Handlers translate it into HTTP 400.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }
