package http

import (
	"context"
	"net/http"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/httpx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// Authenticator resolves an access token to a principal.
// *service.Authenticator satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// AuthnMiddleware reads the access_token cookie. Requests without one pass
// through anonymously; a token that fails any check ends the request with
// the mapped error. Only the cookie is consulted, never the Authorization
// header.
func AuthnMiddleware(a Authenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := cookieValue(r, authsdk.AccessTokenCookie)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			user, err := a.Authenticate(ctx, raw)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx = contextWithPrincipal(ctx, user, raw)
			ctx = httpx.ContextWithUserID(ctx, user.ID)
			ctx = slogx.WithUser(ctx, user.ID, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with UNAUTHENTICATED. It must run
// after AuthnMiddleware.
func RequireAuth() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				authsdk.ErrUnauthenticated.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
