package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

var serviceErrors = []struct {
	err error
	api *authsdk.APIError
}{
	{service.ErrBadCredentials, authsdk.ErrBadCredentials},
	{service.ErrInvalidRefreshToken, authsdk.ErrInvalidRefreshToken},
	{service.ErrRefreshTokenExpired, authsdk.ErrRefreshTokenExpired},
	{service.ErrTokenRevoked, authsdk.ErrTokenRevoked},
	{service.ErrTokenExpired, authsdk.ErrTokenExpired},
	{service.ErrInvalidToken, authsdk.ErrInvalidToken},
	{service.ErrPrincipalNotFound, authsdk.ErrPrincipalNotFound},
	{service.ErrUnauthenticated, authsdk.ErrUnauthenticated},
	{service.ErrNotAMember, authsdk.ErrNotAMember},
	{service.ErrInsufficientRole, authsdk.ErrInsufficientRole},
	{service.ErrMisconfiguredGuard, authsdk.ErrMisconfiguredGuard},
	{service.ErrUsernameTaken, authsdk.ErrUsernameTaken},
	{service.ErrEmailTaken, authsdk.ErrEmailTaken},
	{service.ErrUserNotFound, authsdk.ErrUserNotFound},
	{service.ErrInvalidRole, authsdk.ErrValidation},
}

// apiError maps a service error onto its wire form. Anything not listed is
// a SERVER_ERROR; its details stay in the logs.
func apiError(err error) *authsdk.APIError {
	if errors.Is(err, service.ErrInvalidRegistration) {
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidRegistration.Error()+": ")
		return authsdk.ErrValidation.WithMessage(msg)
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.api
		}
	}
	return authsdk.ErrServerError
}

// writeError logs err at a level matching its severity and writes the
// mapped error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	api := apiError(err)

	log := slogx.FromContext(r.Context())
	if api.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "code", api.Code, "err", err)
	} else {
		log.Debug("request rejected", "code", api.Code, "err", err)
	}

	api.WriteError(w)
}
