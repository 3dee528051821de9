package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource yields a bearer token for outgoing requests.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: a source that cannot produce a token returns an error rather
//     than an empty string.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

// Token returns the static token.
func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrMissingCredentials
	}
	return string(s), nil
}

// ServiceClaims are the claims of a service token.
type ServiceClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ServiceTokenConfig configures a ServiceTokenSource.
type ServiceTokenConfig struct {
	// Secret is the HS256 signing key. Required.
	Secret []byte

	// Role is placed in the "role" claim.
	// Default: "anon"
	Role string

	// Issuer is placed in the "iss" claim.
	Issuer string

	// Subject is placed in the "sub" claim.
	Subject string

	// TTL is the token lifetime.
	// Default: 1 hour
	TTL time.Duration

	// RefreshBefore re-signs a cached token this long before it expires.
	// Default: 1 minute
	RefreshBefore time.Duration

	// Now is the time source. Default: time.Now.
	Now func() time.Time
}

// ServiceTokenSource signs short-lived service tokens and reuses each one
// until it is close to expiry.
type ServiceTokenSource struct {
	config ServiceTokenConfig

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewServiceTokenSource creates a token source.
func NewServiceTokenSource(config ServiceTokenConfig) (*ServiceTokenSource, error) {
	if len(config.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	if config.Role == "" {
		config.Role = "anon"
	}
	if config.TTL <= 0 {
		config.TTL = time.Hour
	}
	if config.RefreshBefore <= 0 {
		config.RefreshBefore = time.Minute
	}
	if config.RefreshBefore >= config.TTL {
		config.RefreshBefore = config.TTL / 2
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &ServiceTokenSource{config: config}, nil
}

// Token returns a valid signed token.
func (s *ServiceTokenSource) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Now()
	if s.token != "" && now.Before(s.expires.Add(-s.config.RefreshBefore)) {
		return s.token, nil
	}

	expires := now.Add(s.config.TTL)
	claims := ServiceClaims{
		Role: s.config.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   s.config.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	s.token = signed
	s.expires = expires
	return signed, nil
}
