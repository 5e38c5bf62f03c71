//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	redisstore "github.com/armandorgr/Project-manager/internal/auth/store/drivers/redis"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a throwaway Redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRevokedTokens_RealRedis(t *testing.T) {
	ctx := context.Background()
	addr := setupRedisContainer(t)

	repo, err := redisstore.NewRevokedTokens(ctx, redisstore.Config{Addr: addr, KeyPrefix: "pm-it:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	now := time.Now().UTC()
	require.NoError(t, repo.RevokeToken(ctx, domain.RevokedToken{
		TokenHash: "abc", RevokedAt: now, ExpiresAt: now.Add(time.Minute),
	}))

	revoked, err := repo.IsTokenRevoked(ctx, "abc", now)
	require.NoError(t, err)
	require.True(t, revoked)

	require.NoError(t, repo.DeleteRevokedToken(ctx, "abc"))
	revoked, err = repo.IsTokenRevoked(ctx, "abc", now)
	require.NoError(t, err)
	require.False(t, revoked)

	// Entries vanish on their own once the TTL elapses.
	require.NoError(t, repo.RevokeToken(ctx, domain.RevokedToken{
		TokenHash: "short", RevokedAt: now, ExpiresAt: now.Add(200 * time.Millisecond),
	}))
	require.Eventually(t, func() bool {
		revoked, err := repo.IsTokenRevoked(ctx, "short", now)
		return err == nil && !revoked
	}, 5*time.Second, 100*time.Millisecond)
}
