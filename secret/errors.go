package secret

import "errors"

// Sentinel errors for secret resolution.
var (
	ErrMissingEnv            = errors.New("secret: missing required environment variables")
	ErrProviderNotRegistered = errors.New("secret: provider not registered")
	ErrEmptySecret           = errors.New("secret: provider returned empty value")
	ErrInvalidRef            = errors.New("secret: invalid reference")
	ErrInvalidRegistration   = errors.New("secret: invalid provider registration")
)
