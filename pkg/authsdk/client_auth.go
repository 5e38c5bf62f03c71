package authsdk

import (
	"context"
	"net/http"
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	return decodeData[UserResponse](resp, http.StatusCreated)
}

// Login authenticates and stores both token cookies in the jar.
func (c *Client) Login(ctx context.Context, username, password string) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[SessionResponse](resp, http.StatusOK)
}

// Refresh rotates the refresh cookie and replaces the access cookie.
func (c *Client) Refresh(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[SessionResponse](resp, http.StatusOK)
}

// Logout retires the held tokens. The server clears both cookies.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// Me returns the principal the access cookie belongs to.
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[UserResponse](resp, http.StatusOK)
}
