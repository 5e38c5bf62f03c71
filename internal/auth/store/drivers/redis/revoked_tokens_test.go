package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/armandorgr/Project-manager/internal/auth/domain"
	redisstore "github.com/armandorgr/Project-manager/internal/auth/store/drivers/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redisstore.RevokedTokens) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, redisstore.NewRevokedTokensWithClient(client, "pm:")
}

func TestRevokedTokens_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, repo := newMiniredis(t)

	require.NoError(t, repo.RevokeToken(ctx, domain.RevokedToken{
		TokenHash: "abc", RevokedAt: t0, ExpiresAt: t0.Add(5 * time.Minute),
	}))

	require.True(t, mr.Exists("pm:revoked:abc"))
	require.Equal(t, 5*time.Minute, mr.TTL("pm:revoked:abc"))

	revoked, err := repo.IsTokenRevoked(ctx, "abc", t0.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = repo.IsTokenRevoked(ctx, "abc", t0.Add(5*time.Minute))
	require.NoError(t, err)
	require.False(t, revoked, "entry must lapse at the token expiry")

	revoked, err = repo.IsTokenRevoked(ctx, "unknown", t0)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, repo.DeleteRevokedToken(ctx, "abc"))
	require.False(t, mr.Exists("pm:revoked:abc"))
}

func TestRevokedTokens_TTLEviction(t *testing.T) {
	ctx := context.Background()
	mr, repo := newMiniredis(t)

	require.NoError(t, repo.RevokeToken(ctx, domain.RevokedToken{
		TokenHash: "abc", RevokedAt: t0, ExpiresAt: t0.Add(time.Minute),
	}))

	mr.FastForward(2 * time.Minute)
	require.False(t, mr.Exists("pm:revoked:abc"))

	n, err := repo.DeleteExpiredRevokedTokens(ctx, t0)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRevokedTokens_AlreadyExpiredToken(t *testing.T) {
	ctx := context.Background()
	_, repo := newMiniredis(t)

	require.NoError(t, repo.RevokeToken(ctx, domain.RevokedToken{
		TokenHash: "old", RevokedAt: t0, ExpiresAt: t0.Add(-time.Minute),
	}))

	revoked, err := repo.IsTokenRevoked(ctx, "old", t0)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRevokedTokens_Ping(t *testing.T) {
	mr, repo := newMiniredis(t)
	require.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	require.Error(t, repo.Ping(context.Background()))
}

func TestNewRevokedTokens(t *testing.T) {
	mr := miniredis.RunT(t)

	repo, err := redisstore.NewRevokedTokens(context.Background(), redisstore.Config{Addr: mr.Addr(), KeyPrefix: "pm:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	_, err = redisstore.NewRevokedTokens(context.Background(), redisstore.Config{})
	require.Error(t, err)
}
