package authsdk

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Cookie names used by the service. The access token is sent on every
// request; the refresh token only under /api/auth.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Client talks to the project-manager API. Tokens live in the client's
// cookie jar, so a Client is one browser-like session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with an empty cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Cookie returns the value the jar would send for name on path, or "".
func (c *Client) Cookie(path, name string) string {
	if c.HTTPClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.url(path))
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// AccessToken is shorthand for the access cookie currently held.
func (c *Client) AccessToken() string { return c.Cookie("/", AccessTokenCookie) }

// RefreshToken is shorthand for the refresh cookie currently held.
func (c *Client) RefreshToken() string { return c.Cookie("/api/auth/refresh", RefreshTokenCookie) }
