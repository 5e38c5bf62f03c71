package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
	"github.com/armandorgr/Project-manager/pkg/idx"
)

// RefreshTokenService manages the opaque refresh tokens. Only the
// fingerprint is persisted and a principal holds at most one token.
type RefreshTokenService struct {
	Store store.Store
	TTL   time.Duration
	Clock Clock
}

// Create issues a new refresh token for ownerID in its own transaction.
func (s *RefreshTokenService) Create(ctx context.Context, ownerID string) (domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		rt, err = s.CreateTx(ctx, tx, ownerID)
		return err
	})
	return rt, err
}

// CreateTx removes every token ownerID holds and inserts a fresh one within
// tx. The returned record carries the clear token in Token.
func (s *RefreshTokenService) CreateTx(ctx context.Context, tx store.Tx, ownerID string) (domain.RefreshToken, error) {
	opaque, err := cryptox.NewOpaqueToken()
	if err != nil {
		return domain.RefreshToken{}, err
	}

	if _, err := tx.RefreshTokens().DeleteRefreshTokensByUser(ctx, ownerID); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("clear refresh tokens: %w", err)
	}

	at := now(s.Clock)
	rt := domain.RefreshToken{
		ID:        idx.NewAt(at).String(),
		UserID:    ownerID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: at.Add(s.TTL),
		CreatedAt: at,
	}
	if err := tx.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("store refresh token: %w", err)
	}

	rt.Token = opaque
	return rt, nil
}

// FindByToken looks token up by fingerprint. Unknown or empty tokens report
// false with a nil error; only store failures are returned as errors.
func (s *RefreshTokenService) FindByToken(ctx context.Context, token string) (domain.RefreshToken, bool, error) {
	return findRefreshToken(ctx, s.Store, token)
}

func findRefreshToken(ctx context.Context, st store.Store, token string) (domain.RefreshToken, bool, error) {
	if token == "" {
		return domain.RefreshToken{}, false, nil
	}
	rt, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(token))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.RefreshToken{}, false, nil
	case err != nil:
		return domain.RefreshToken{}, false, fmt.Errorf("find refresh token: %w", err)
	}
	return rt, true, nil
}

// DeleteByOwner removes every token held by ownerID.
func (s *RefreshTokenService) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := s.Store.RefreshTokens().DeleteRefreshTokensByUser(ctx, ownerID)
	return err
}

// DeleteByID removes one token. Deleting a missing token is not an error.
func (s *RefreshTokenService) DeleteByID(ctx context.Context, id string) error {
	_, err := s.Store.RefreshTokens().DeleteRefreshTokenByID(ctx, id)
	return err
}

// DeleteByToken removes the token with the given clear value, if any.
func (s *RefreshTokenService) DeleteByToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, cryptox.FingerprintToken(token))
}
