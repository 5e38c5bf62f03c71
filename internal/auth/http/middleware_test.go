package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type authenticatorFunc func(ctx context.Context, token string) (domain.User, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (domain.User, error) {
	return f(ctx, token)
}

type authorizerFunc func(ctx context.Context, principal domain.User, projectID string, required domain.ProjectRole) error

func (f authorizerFunc) Authorize(ctx context.Context, principal domain.User, projectID string, required domain.ProjectRole) error {
	return f(ctx, principal, projectID, required)
}

var alice = domain.User{ID: "01HZ0000000000000000000000", Username: "alice"}

// principalEcho writes the authenticated username, or "anonymous".
var principalEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	u, ok := PrincipalFromContext(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(u.Username + ":" + AccessTokenFromContext(r.Context())))
})

func withAccessCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: authsdk.AccessTokenCookie, Value: token})
	return r
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	authn := authenticatorFunc(func(ctx context.Context, token string) (domain.User, error) {
		switch token {
		case "good":
			return alice, nil
		case "revoked":
			return domain.User{}, service.ErrTokenRevoked
		case "expired":
			return domain.User{}, service.ErrTokenExpired
		default:
			return domain.User{}, errors.New("database is locked")
		}
	})
	h := AuthnMiddleware(authn)(principalEcho)

	t.Run("no cookie passes anonymously", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid cookie sets principal", func(t *testing.T) {
		var gotUserID string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = httpx.UserIDFromContext(r.Context())
			principalEcho(w, r)
		})

		rec := httptest.NewRecorder()
		AuthnMiddleware(authn)(inner).ServeHTTP(rec, withAccessCookie(httptest.NewRequest(http.MethodGet, "/", nil), "good"))
		require.Equal(t, "alice:good", rec.Body.String())
		require.Equal(t, alice.ID, gotUserID)
	})

	tests := []struct {
		token  string
		status int
		code   string
	}{
		{"revoked", http.StatusUnauthorized, authsdk.CodeTokenRevoked},
		{"expired", http.StatusForbidden, authsdk.CodeTokenExpired},
		{"boom", http.StatusInternalServerError, authsdk.CodeServerError},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, withAccessCookie(httptest.NewRequest(http.MethodGet, "/", nil), tc.token))
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Body.String(), `"code":"`+tc.code+`"`)
			require.NotContains(t, rec.Body.String(), "database is locked")
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RequireAuth()(principalEcho).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), authsdk.CodeUnauthenticated)
}

func TestRequireProjectRole(t *testing.T) {
	t.Parallel()

	var gotProject string
	var gotRole domain.ProjectRole
	authz := authorizerFunc(func(ctx context.Context, principal domain.User, projectID string, required domain.ProjectRole) error {
		gotProject, gotRole = projectID, required
		if principal.Username != "alice" {
			return service.ErrNotAMember
		}
		return nil
	})

	mux := http.NewServeMux()
	mux.Handle("GET /api/project/{projectId}/role", httpx.Chain(principalEcho,
		AuthnMiddleware(authenticatorFunc(func(ctx context.Context, token string) (domain.User, error) {
			return domain.User{ID: token, Username: token}, nil
		})),
		RequireProjectRole(authz, domain.RoleAdmin, httpx.PathValue(ProjectIDParam)),
	))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/project/p1/role", nil), "alice"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "p1", gotProject)
	require.Equal(t, domain.RoleAdmin, gotRole)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/project/p1/role", nil), "bob"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), authsdk.CodeNotAMember)
}

func TestRequireProjectRole_WiringPanics(t *testing.T) {
	t.Parallel()

	ok := authorizerFunc(func(context.Context, domain.User, string, domain.ProjectRole) error { return nil })

	require.Panics(t, func() { RequireProjectRole(nil, domain.RoleUser, httpx.PathValue("projectId")) })
	require.Panics(t, func() { RequireProjectRole(ok, domain.RoleUser, nil) })
	require.Panics(t, func() { RequireProjectRole(ok, domain.RoleNone, httpx.PathValue("projectId")) })
}

func TestApiErrorMapping(t *testing.T) {
	t.Parallel()

	require.Same(t, authsdk.ErrMisconfiguredGuard, apiError(service.ErrMisconfiguredGuard))
	require.Same(t, authsdk.ErrInsufficientRole, apiError(service.ErrInsufficientRole))
	require.Same(t, authsdk.ErrServerError, apiError(errors.New("unexpected")))

	reg := apiError(errors.Join(service.ErrInvalidRegistration))
	require.Equal(t, authsdk.CodeValidation, reg.Code)
}

func TestTokenCookies(t *testing.T) {
	t.Parallel()

	pair := domain.TokenPair{
		AccessToken:      "a.b.c",
		RefreshToken:     "opaque",
		AccessExpiresAt:  t0.Add(10 * time.Minute),
		RefreshExpiresAt: t0.Add(24 * time.Hour),
	}

	t.Run("secure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CookieConfig{Secure: true}.setTokenCookies(rec, pair, t0)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)

		access, refresh := cookies[0], cookies[1]
		require.Equal(t, authsdk.AccessTokenCookie, access.Name)
		require.Equal(t, "/", access.Path)
		require.Equal(t, 600, access.MaxAge)
		require.True(t, access.HttpOnly)
		require.True(t, access.Secure)
		require.Equal(t, http.SameSiteNoneMode, access.SameSite)

		require.Equal(t, authsdk.RefreshTokenCookie, refresh.Name)
		require.Equal(t, RefreshCookiePath, refresh.Path)
		require.Equal(t, 86400, refresh.MaxAge)
		require.True(t, refresh.HttpOnly)
	})

	t.Run("clear", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CookieConfig{}.clearTokenCookies(rec)

		headers := rec.Result().Header.Values("Set-Cookie")
		require.Len(t, headers, 2)
		for _, h := range headers {
			require.True(t, strings.Contains(h, "Max-Age=0"), h)
			require.Contains(t, h, "SameSite=Lax")
		}
	})
}

func TestValidateMemberTarget(t *testing.T) {
	t.Parallel()

	require.Nil(t, validateMemberTarget(authsdk.AddMemberRequest{Username: "bob"}))
	require.Nil(t, validateMemberTarget(authsdk.AddMemberRequest{Email: "bob@example.com"}))
	require.Len(t, validateMemberTarget(authsdk.AddMemberRequest{Username: "  "}), 2)
}
