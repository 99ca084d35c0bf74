// Package common defines shared constants and sentinel errors used across
// the service, transport and storage layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Field validation errors.
	ErrRequired      = errors.New("this field is required")
	ErrTooLong       = errors.New("value is too long")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrMismatch      = errors.New("passwords do not match")

	// Registration errors.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("this email already exists")

	// Login never says which half of the credentials was wrong.
	ErrAuthenticationFailed = errors.New("invalid username/password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
