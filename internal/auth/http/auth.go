package http

import (
	"net/http"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/httpx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	Sessions *service.SessionService
	Users    *service.UserService
	Cookies  CookieConfig
	Clock    service.Clock
}

// HandleRegister serves POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.NewResponse("User registered successfully", userResponse(user)))
}

// HandleLogin serves POST /api/auth/login. Tokens are delivered in cookies
// only.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair, h.now())
	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("Login successful", authsdk.SessionResponse{
		Username:         pair.Username,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}))
}

// HandleRefresh serves POST /api/auth/refresh using the refresh_token
// cookie. Both cookies are replaced on success.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := cookieValue(r, authsdk.RefreshTokenCookie)
	if raw == "" {
		writeError(w, r, service.ErrInvalidRefreshToken)
		return
	}

	pair, err := h.Sessions.Refresh(ctx, raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair, h.now())
	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("Token refreshed", authsdk.SessionResponse{
		Username:         pair.Username,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}))
}

// HandleLogout serves POST /api/auth/logout. It succeeds with or without
// cookies and always clears them.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	access := cookieValue(r, authsdk.AccessTokenCookie)
	refresh := cookieValue(r, authsdk.RefreshTokenCookie)

	if err := h.Sessions.Logout(ctx, access, refresh); err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Debug("auth cookies cleared")
	h.Cookies.clearTokenCookies(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe serves GET /api/auth/me.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("", userResponse(user)))
}

func (h *AuthHandler) now() time.Time {
	if h.Clock == nil {
		return service.SystemClock{}.Now()
	}
	return h.Clock.Now()
}

func userResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
