package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
	"github.com/armandorgr/Project-manager/pkg/jwtx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// SessionService is the only component that mints or retires tokens.
type SessionService struct {
	Store         store.Store
	Codec         *jwtx.Codec
	Hasher        *cryptox.PasswordHasher
	RefreshTokens *RefreshTokenService
	Revocations   *RevocationService
	Clock         Clock
	AccessTTL     time.Duration
	Events        EventRecorder
}

// Login checks the credentials and issues a fresh token pair. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, username, password string) (pair domain.TokenPair, err error) {
	defer func() { record(s.Events, eventLogin, err) }()
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login rejected", slog.String("username", username), slog.String("reason", "unknown_user"))
			return domain.TokenPair{}, ErrBadCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("username", username), slog.String("reason", "bad_password"))
		return domain.TokenPair{}, ErrBadCredentials
	}

	issuedAt := now(s.Clock)
	access, accessExp, err := s.mintAccess(user, issuedAt)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.RefreshTokens.Create(ctx, user.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	// Minting is deterministic, so a token revoked by a logout within the
	// same second would come back identical.
	revoked, err := s.Revocations.IsRevoked(ctx, access)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if revoked {
		if err := s.Revocations.Unrevoke(ctx, access); err != nil {
			return domain.TokenPair{}, err
		}
		l.Debug("cleared stale revocation for freshly minted token", slog.String("user_id", user.ID))
	}

	l.Info("login succeeded", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return domain.TokenPair{
		Username:         user.Username,
		AccessToken:      access,
		RefreshToken:     refresh.Token,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

// Refresh rotates refreshToken: the presented token is consumed and a new
// pair is issued. When two callers race with the same token exactly one
// wins; the other gets ErrInvalidRefreshToken.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (pair domain.TokenPair, err error) {
	defer func() { record(s.Events, eventRefresh, err) }()
	l := slogx.FromContext(ctx)

	var expired bool
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, ok, err := findRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidRefreshToken
		}

		at := now(s.Clock)
		if current.IsExpiredAt(at) {
			// Commit the delete, then report the expiry.
			expired = true
			_, err := tx.RefreshTokens().DeleteRefreshTokenByID(ctx, current.ID)
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, current.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPrincipalNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		consumed, err := tx.RefreshTokens().DeleteRefreshTokenByID(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("consume refresh token: %w", err)
		}
		if !consumed {
			return ErrInvalidRefreshToken
		}

		access, accessExp, err := s.mintAccess(user, at)
		if err != nil {
			return err
		}

		next, err := s.RefreshTokens.CreateTx(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		pair = domain.TokenPair{
			Username:         user.Username,
			AccessToken:      access,
			RefreshToken:     next.Token,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: next.ExpiresAt,
		}
		l.Info("refresh token rotated", slog.String("user_id", user.ID))
		return nil
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	if expired {
		l.Info("refresh rejected", slog.String("reason", "expired"))
		return domain.TokenPair{}, ErrRefreshTokenExpired
	}
	return pair, nil
}

// Logout retires both tokens. Either may be empty or unknown; a second
// logout with the same tokens succeeds too.
func (s *SessionService) Logout(ctx context.Context, accessToken, refreshToken string) (err error) {
	defer func() { record(s.Events, eventLogout, err) }()
	l := slogx.FromContext(ctx)

	rt, ok, err := s.RefreshTokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if ok {
		if err := s.RefreshTokens.DeleteByID(ctx, rt.ID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if accessToken == "" {
		return nil
	}

	claims, err := s.Codec.VerifyAndDecode(accessToken)
	if err != nil {
		l.Debug("logout skipped revocation of undecodable access token", slog.Any("error", err))
		return nil
	}

	if err := s.Revocations.Revoke(ctx, accessToken, claims.RemainingAt(now(s.Clock))); err != nil {
		return err
	}

	l.Info("logout", slog.String("username", claims.Subject))
	return nil
}

func (s *SessionService) mintAccess(user domain.User, issuedAt time.Time) (string, time.Time, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	exp := issuedAt.Add(ttl)

	token, err := s.Codec.Mint(user.Username, issuedAt, exp)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("mint access token: %w", err)
	}
	return token, exp, nil
}
