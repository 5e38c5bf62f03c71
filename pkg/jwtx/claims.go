package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 10 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Claims are the access-token claims. The subject carries the username of
// the principal the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds the claims for an access token issued to subject.
// No random identifier is added so that the same subject, issuer and
// instants always produce the same token.
func NewAccessClaims(subject, issuer string, issuedAt, expiresAt time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

// ExpiresAtTime returns the exp claim, or the zero time if absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// IssuedAtTime returns the iat claim, or the zero time if absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// IsExpiredAt reports whether the token is past its expiry at now. A token
// is considered expired from the exp instant onwards.
func (c *Claims) IsExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// RemainingAt returns how long the token stays valid after now, never
// negative.
func (c *Claims) RemainingAt(now time.Time) time.Duration {
	return max(c.ExpiresAtTime().Sub(now), 0)
}
