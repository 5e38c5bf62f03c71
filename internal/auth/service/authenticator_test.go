package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/armandorgr/Project-manager/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	alice := h.seedUser(t, "alice", "pw")

	mint := func(t *testing.T, subject string, iat time.Time) string {
		t.Helper()
		tok, err := h.Codec.Mint(subject, iat, iat.Add(testAccessTTL))
		require.NoError(t, err)
		return tok
	}

	t.Run("valid token", func(t *testing.T) {
		got, err := h.Authn.Authenticate(ctx, mint(t, "alice", t0))
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.Equal(t, "alice", got.Username)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Authn.Authenticate(ctx, "not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other, err := jwtx.NewCodec([]byte(strings.Repeat("x", jwtx.MinSecretSize)), testIssuer)
		require.NoError(t, err)
		tok, err := other.Mint("alice", t0, t0.Add(testAccessTTL))
		require.NoError(t, err)

		_, err = h.Authn.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired and never revoked", func(t *testing.T) {
		tok := mint(t, "alice", t0.Add(-time.Hour))
		_, err := h.Authn.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		tok, err := h.Codec.Mint("alice", t0.Add(-testAccessTTL), t0)
		require.NoError(t, err)
		_, err = h.Authn.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("expiry wins over revocation", func(t *testing.T) {
		tok := mint(t, "alice", t0.Add(-time.Hour))
		require.NoError(t, h.Revocations.Revoke(ctx, tok, time.Hour))

		_, err := h.Authn.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("revoked", func(t *testing.T) {
		tok := mint(t, "alice", t0.Add(-time.Second))
		require.NoError(t, h.Revocations.Revoke(ctx, tok, testAccessTTL))

		_, err := h.Authn.Authenticate(ctx, tok)
		require.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("unknown principal", func(t *testing.T) {
		_, err := h.Authn.Authenticate(ctx, mint(t, "ghost", t0))
		require.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	require.Equal(t, 1, h.Events.Count(eventAuthenticate, "success"))
	require.Equal(t, 1, h.Events.Count(eventAuthenticate, ErrTokenRevoked.Error()))
}
