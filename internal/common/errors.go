package common

import "errors"

var (
	// Validation errors for user-supplied credentials.
	ErrEmptyIdentifier = errors.New("email must not be empty")
	ErrEmptySecret     = errors.New("password must not be empty")
)
