// Package common defines shared constants and sentinel errors used across
// client and server layers of AY-Code. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// ErrorUnauthorized is the single credential failure returned by login,
	// whether the email is unknown or the password is wrong.
	ErrorUnauthorized = errors.New("invalid credentials")

	// Access gate errors.
	ErrTokenMissing    = errors.New("missing token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSubjectNotFound = errors.New("user not found")
	ErrorForbidden     = errors.New("forbidden")

	// ErrTokenExpired also matches ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)
