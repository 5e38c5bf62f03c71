package store

import (
	"context"
	"errors"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx can hand out the same repositories bound
// to the transaction, which also stops callers from nesting transactions.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	RevokedTokens() RevokedTokens
	Memberships() Memberships

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction: committed when fn returns nil,
	// rolled back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the principal directory.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername resolves the subject of an access token.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Duplicate usernames or emails yield ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to refresh tokens and memberships (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record. A second token
	// for the same user is rejected with ErrAlreadyExists.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash looks a token up by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// CountRefreshTokensByUser returns how many tokens a user holds (0 or 1).
	CountRefreshTokensByUser(ctx context.Context, userID string) (int, error)

	// DeleteRefreshTokenByID removes one token and reports whether a row was
	// actually deleted. Rotation relies on this to detect a concurrent
	// consumer.
	DeleteRefreshTokenByID(ctx context.Context, id string) (bool, error)

	// DeleteRefreshTokenByHash removes a token by fingerprint, if present.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteRefreshTokensByUser removes every token a user holds.
	DeleteRefreshTokensByUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// RevokedTokens is the access-token denylist. It is part of Store for the
// sqlite driver and can be backed by Redis instead.
type RevokedTokens interface {
	// RevokeToken upserts an entry; re-revoking replaces the expiry.
	RevokeToken(ctx context.Context, t domain.RevokedToken) error

	// IsTokenRevoked reports whether an entry for hash exists and its expiry
	// is still after now.
	IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error)

	// DeleteRevokedToken removes the entry for hash, if any.
	DeleteRevokedToken(ctx context.Context, hash string) error

	// DeleteExpiredRevokedTokens is housekeeping.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)

	Ping(ctx context.Context) error
}

// Memberships answers "what role does this user have in that project".
type Memberships interface {
	// GetRole returns the role of userID in projectID, or ErrNotFound.
	GetRole(ctx context.Context, userID, projectID string) (domain.ProjectRole, error)

	// UpsertMembership adds a member or changes its role.
	UpsertMembership(ctx context.Context, m domain.Membership) error

	// ListMemberships returns the members of a project ordered by join time.
	ListMemberships(ctx context.Context, projectID string) ([]domain.Membership, error)
}
