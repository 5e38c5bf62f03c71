package http

import (
	"net/http"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
)

// RefreshCookiePath scopes the refresh cookie to the auth endpoints that
// consume it (refresh and logout).
const RefreshCookiePath = "/api/auth"

// CookieConfig controls how the token cookies are issued.
type CookieConfig struct {
	// Secure marks cookies Secure and SameSite=None. Disable only for plain
	// HTTP development setups, where browsers would drop such cookies.
	Secure bool
}

func (c CookieConfig) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setTokenCookies writes both token cookies with a Max-Age matching each
// token's remaining lifetime.
func (c CookieConfig) setTokenCookies(w http.ResponseWriter, pair domain.TokenPair, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     authsdk.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   maxAge(pair.AccessExpiresAt, now),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     authsdk.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     RefreshCookiePath,
		MaxAge:   maxAge(pair.RefreshExpiresAt, now),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

// clearTokenCookies expires both cookies on the client.
func (c CookieConfig) clearTokenCookies(w http.ResponseWriter) {
	for _, ck := range []struct{ name, path string }{
		{authsdk.AccessTokenCookie, "/"},
		{authsdk.RefreshTokenCookie, RefreshCookiePath},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     ck.name,
			Value:    "",
			Path:     ck.path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: c.sameSite(),
		})
	}
}

func maxAge(expiresAt, now time.Time) int {
	secs := int(expiresAt.Sub(now).Seconds())
	return max(secs, 1)
}

// cookieValue returns the named cookie's value, or "" when absent.
func cookieValue(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
