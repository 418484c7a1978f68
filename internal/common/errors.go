// Package common defines shared sentinel errors used across the client and
// server layers of notekeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors. A note owned by another user surfaces as
	// ErrorNotFound as well; the two cases are deliberately indistinguishable.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrorAlreadyExists  = errors.New("username already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")

	// Note validation errors.
	ErrTitleRequired = errors.New("title is required")

	// Auth errors. Covers bad signature, malformed and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")
)
