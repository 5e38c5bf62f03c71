package service

import (
	"context"
	"fmt"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
)

// RevocationService is the access-token denylist. Tokens are keyed by their
// fingerprint and each entry lives until the token would have expired.
type RevocationService struct {
	Store store.RevokedTokens
	Clock Clock
}

// Revoke denylists token for ttl from now. A negative ttl is treated as
// zero, which yields an entry that is already prunable.
func (s *RevocationService) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	at := now(s.Clock)
	entry := domain.RevokedToken{
		TokenHash: cryptox.FingerprintToken(token),
		RevokedAt: at,
		ExpiresAt: at.Add(max(ttl, 0)),
	}
	if err := s.Store.RevokeToken(ctx, entry); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether token has a live denylist entry.
func (s *RevocationService) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.Store.IsTokenRevoked(ctx, cryptox.FingerprintToken(token), now(s.Clock))
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}

// Unrevoke removes any entry for token. Removing a missing entry is fine.
func (s *RevocationService) Unrevoke(ctx context.Context, token string) error {
	if err := s.Store.DeleteRevokedToken(ctx, cryptox.FingerprintToken(token)); err != nil {
		return fmt.Errorf("unrevoke token: %w", err)
	}
	return nil
}
