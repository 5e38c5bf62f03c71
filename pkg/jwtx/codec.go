package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC secret accepted for HS512 (512 bits).
const MinSecretSize = 64

// Codec mints and verifies HS512 access tokens with a single shared secret.
//
// Verification never looks at the clock; expiry is decided separately with
// IsExpired so callers can map "expired" and "invalid" to different
// outcomes.
type Codec struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewCodec returns a codec that signs with secret and stamps issuer on every
// token it mints.
func NewCodec(secret []byte, issuer string) (*Codec, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakSecret, len(secret), MinSecretSize)
	}
	if issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &Codec{
		secret: key,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issuer returns the issuer stamped on minted tokens.
func (c *Codec) Issuer() string { return c.issuer }

// Mint signs a compact JWS for subject. Identical inputs produce an
// identical token.
func (c *Codec) Mint(subject string, issuedAt, expiresAt time.Time) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidClaim)
	}

	claims := NewAccessClaims(subject, c.issuer, issuedAt, expiresAt)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// VerifyAndDecode checks the signature, algorithm and issuer of token and
// returns its claims. It succeeds for expired tokens.
func (c *Codec) VerifyAndDecode(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSig
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// IsExpired reports whether token is expired at now. Tokens that fail
// verification are treated as expired.
func (c *Codec) IsExpired(token string, now time.Time) bool {
	claims, err := c.VerifyAndDecode(token)
	if err != nil {
		return true
	}
	return claims.IsExpiredAt(now)
}
