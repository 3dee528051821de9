package auth

import "errors"

// Sentinel errors for credential handling.
var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrMissingSecret      = errors.New("auth: signing secret is empty")
	ErrSigningFailed      = errors.New("auth: token signing failed")
)
