// Package redis keeps the access-token denylist in Redis so several API
// replicas share one view of revoked tokens.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	goredis "github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

// minTTL is used for entries whose token is already expired; Redis rejects
// a zero PX.
const minTTL = time.Millisecond

// Config holds the connection settings.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RevokedTokens implements store.RevokedTokens. Each entry is a plain key
// holding the expiry in unix milliseconds, with a TTL so Redis evicts it on
// its own once the token would have expired anyway.
type RevokedTokens struct {
	client    goredis.UniversalClient
	keyPrefix string
}

var _ store.RevokedTokens = (*RevokedTokens)(nil)

// NewRevokedTokens dials Redis and verifies the connection.
func NewRevokedTokens(ctx context.Context, cfg Config) (*RevokedTokens, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: address is required")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connect: %w", err)
	}

	return NewRevokedTokensWithClient(client, cfg.KeyPrefix), nil
}

// NewRevokedTokensWithClient wraps an existing client, e.g. one pointed at
// miniredis in tests.
func NewRevokedTokensWithClient(client goredis.UniversalClient, keyPrefix string) *RevokedTokens {
	return &RevokedTokens{client: client, keyPrefix: keyPrefix}
}

func (r *RevokedTokens) key(hash string) string {
	return r.keyPrefix + "revoked:" + hash
}

func (r *RevokedTokens) RevokeToken(ctx context.Context, t domain.RevokedToken) error {
	ttl := max(t.ExpiresAt.Sub(t.RevokedAt), minTTL)
	val := strconv.FormatInt(t.ExpiresAt.UnixMilli(), 10)

	if err := r.client.Set(ctx, r.key(t.TokenHash), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis: revoke: %w", err)
	}
	return nil
}

func (r *RevokedTokens) IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error) {
	val, err := r.client.Get(ctx, r.key(hash)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: lookup: %w", err)
	}

	expiresAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("redis: corrupt entry for %s: %w", hash, err)
	}
	return expiresAt > now.UnixMilli(), nil
}

func (r *RevokedTokens) DeleteRevokedToken(ctx context.Context, hash string) error {
	if err := r.client.Del(ctx, r.key(hash)).Err(); err != nil {
		return fmt.Errorf("redis: delete: %w", err)
	}
	return nil
}

// DeleteExpiredRevokedTokens is a no-op: Redis expires entries itself.
func (r *RevokedTokens) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *RevokedTokens) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *RevokedTokens) Close() error {
	return r.client.Close()
}
