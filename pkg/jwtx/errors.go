package jwtx

import "errors"

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	// ErrWeakSecret is returned when the HMAC secret is shorter than
	// MinSecretSize bytes.
	ErrWeakSecret = errors.New("jwtx: secret too short for HS512")
)
