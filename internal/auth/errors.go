package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is returned by store lookups that match nothing.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredential is the common ancestor of both login failure
	// modes; callers that do not care which credential was wrong match on
	// this one.
	ErrInvalidCredential = errors.New("invalid credential")

	ErrUnknownIdentifier = fmt.Errorf("unknown username or email: %w", ErrInvalidCredential)
	ErrWrongPassword     = fmt.Errorf("password mismatch: %w", ErrInvalidCredential)

	// ErrTokenInvalid covers missing, malformed, tampered and expired
	// tokens. The wrapped cause is kept for logs only; handlers treat all
	// of them the same way.
	ErrTokenInvalid = errors.New("invalid token")
)

// DuplicateError reports which field collided during registration.
type DuplicateError struct {
	Field string // "username" or "email"
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}
