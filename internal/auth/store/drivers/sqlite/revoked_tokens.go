package sqlite

import (
	"context"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
)

type revokedTokensRepo struct {
	db dbtx
}

func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token_hash, revoked_at, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (token_hash) DO UPDATE SET
		     revoked_at = excluded.revoked_at,
		     expires_at = excluded.expires_at`,
		t.TokenHash, toMillis(t.RevokedAt), toMillis(t.ExpiresAt),
	)
	return err
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = ? AND expires_at > ?)`,
		hash, toMillis(now),
	).Scan(&exists)
	return exists, err
}

func (r *revokedTokensRepo) DeleteRevokedToken(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE token_hash = ?`, hash)
	return err
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Ping is a no-op; the owning Store pings the database.
func (r *revokedTokensRepo) Ping(ctx context.Context) error { return nil }
