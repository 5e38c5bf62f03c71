package domain

import "time"

// TokenPair is what a successful login or refresh hands back: a short-lived
// access token (JWT) and an opaque refresh token, with their expiries.
type TokenPair struct {
	// Username is the subject the access token was minted for.
	Username string

	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RefreshToken models the stored refresh token record. A principal owns at
// most one at a time.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time

	// Token is the clear opaque value. It is only populated on the record
	// returned right after creation and never persisted.
	Token string
}

// IsExpiredAt reports whether now is strictly after the expiry. A token is
// still usable at the exact instant it expires.
func (t RefreshToken) IsExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RevokedToken is an entry in the access-token denylist. The token is
// stored under its fingerprint and the entry lapses at ExpiresAt, which is
// the natural expiry of the token itself.
type RevokedToken struct {
	TokenHash string
	RevokedAt time.Time
	ExpiresAt time.Time
}
