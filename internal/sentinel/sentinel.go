package sentinel

import "errors"

// Errors shared by stores and services. Callers wrap them with context and
// the web layer maps them to HTTP statuses with errors.Is.
//
// Public lookups must collapse every negative outcome into ErrNotFound so
// that a hidden record cannot be told apart from a missing one.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrImmutableField = errors.New("immutable field")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("expired token")
	ErrAlreadyExists  = errors.New("already exists")
	ErrConflict       = errors.New("conflict")
	ErrValidation     = errors.New("validation failed")
)
