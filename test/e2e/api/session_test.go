//go:build e2e

package api_test

import (
	"net/http"
	"testing"

	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestSessionLifecycle walks one user through register, login, refresh and
// logout against a real container.
func TestSessionLifecycle(t *testing.T) {
	baseURL := setupAPIContainer(t)
	ctx := t.Context()

	client, user := registerAndLogin(t, baseURL, "alice")

	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)
	require.Equal(t, "alice", me.Username)

	oldRefresh := client.RefreshToken()
	session, err := client.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", session.Username)
	require.NotEqual(t, oldRefresh, client.RefreshToken(), "refresh must rotate the token")

	access := client.AccessToken()
	require.NoError(t, client.Logout(ctx))
	require.Empty(t, client.AccessToken(), "logout clears the access cookie")

	_, err = client.Me(ctx)
	requireAPIError(t, err, authsdk.ErrUnauthenticated)

	// Replaying the pre-logout token must hit the denylist.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: authsdk.AccessTokenCookie, Value: access})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	baseURL := setupAPIContainer(t)
	ctx := t.Context()

	registerAndLogin(t, baseURL, "bob")
	client := authsdk.NewClient(baseURL)

	_, err := client.Login(ctx, "bob", "wrong-password")
	requireAPIError(t, err, authsdk.ErrBadCredentials)

	_, err = client.Login(ctx, "nobody", testPassword)
	requireAPIError(t, err, authsdk.ErrBadCredentials)

	_, err = client.Refresh(ctx)
	requireAPIError(t, err, authsdk.ErrInvalidRefreshToken)
}

func TestRegisterConflicts(t *testing.T) {
	baseURL := setupAPIContainer(t)
	ctx := t.Context()

	registerAndLogin(t, baseURL, "carol")
	client := authsdk.NewClient(baseURL)

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		Username: "carol",
		Email:    "other@example.com",
		Password: testPassword,
	})
	requireAPIError(t, err, authsdk.ErrUsernameTaken)

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		Username: "carol2",
		Email:    "carol@example.com",
		Password: testPassword,
	})
	requireAPIError(t, err, authsdk.ErrEmailTaken)

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		Username: "x",
		Email:    "not-an-email",
		Password: "short",
	})
	requireAPIError(t, err, authsdk.ErrValidation)
}
