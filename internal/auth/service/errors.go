package service

import "errors"

// Authentication and session failures.
var (
	ErrBadCredentials      = errors.New("bad_credentials")
	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")
	ErrRefreshTokenExpired = errors.New("refresh_token_expired")
	ErrInvalidToken        = errors.New("invalid_token")
	ErrTokenExpired        = errors.New("token_expired")
	ErrTokenRevoked        = errors.New("token_revoked")
	ErrPrincipalNotFound   = errors.New("principal_not_found")
	ErrUnauthenticated     = errors.New("unauthenticated")
)

// Authorization failures.
var (
	ErrNotAMember         = errors.New("not_a_member")
	ErrInsufficientRole   = errors.New("insufficient_role")
	ErrMisconfiguredGuard = errors.New("misconfigured_guard")
)

// Registration and membership management failures.
var (
	ErrInvalidRegistration = errors.New("invalid_registration")
	ErrUsernameTaken       = errors.New("username_taken")
	ErrEmailTaken          = errors.New("email_taken")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrInvalidRole         = errors.New("invalid_role")
)

var knownErrors = []error{
	ErrBadCredentials, ErrInvalidRefreshToken, ErrRefreshTokenExpired,
	ErrInvalidToken, ErrTokenExpired, ErrTokenRevoked, ErrPrincipalNotFound,
	ErrUnauthenticated, ErrNotAMember, ErrInsufficientRole, ErrMisconfiguredGuard,
	ErrInvalidRegistration, ErrUsernameTaken, ErrEmailTaken, ErrUserNotFound,
	ErrInvalidRole,
}

// outcome is the metrics label for err: "success", the sentinel code, or
// "error" for anything unexpected.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "error"
}
