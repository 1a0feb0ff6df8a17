// Package store holds the in-memory repositories backing the API. These
// sentinel values let higher layers such as handlers distinguish between
// failure scenarios: ErrTaskNotFound and ErrUserNotFound translate to
// HTTP 404, ErrEmailExists signals a duplicate unique key on register.
package store

import "errors"

// ErrTaskNotFound is returned when no task exists for the given id.
var ErrTaskNotFound = errors.New("task not found")

// ErrUserNotFound is returned when no user exists for the given id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering an email that is already
// taken. Comparison is case-insensitive.
var ErrEmailExists = errors.New("email already exists")
