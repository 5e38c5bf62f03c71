package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// OpaqueTokenSize is the entropy of a refresh token in bytes (256 bits,
// 43 chars once encoded).
const OpaqueTokenSize = 32

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewOpaqueToken generates a refresh token. The value carries no meaning;
// it is only ever looked up through its fingerprint.
func NewOpaqueToken() (string, error) {
	return GenerateToken(OpaqueTokenSize)
}

// FingerprintToken is the SHA-256 of token in base64url. Refresh tokens and
// revoked access tokens are stored under their fingerprint, never in clear.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
