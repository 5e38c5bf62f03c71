package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/jwtx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// Authenticator turns a presented access token into a principal.
type Authenticator struct {
	Codec       *jwtx.Codec
	Revocations *RevocationService
	Users       store.Users
	Clock       Clock
	Events      EventRecorder
}

// Authenticate runs the checks in a fixed order: signature and structure,
// expiry, revocation, then the principal lookup. Store failures are
// returned wrapped and never reported as an authentication failure.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (user domain.User, err error) {
	defer func() { record(a.Events, eventAuthenticate, err) }()

	claims, err := a.Codec.VerifyAndDecode(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("access token rejected", slog.Any("error", err))
		return domain.User{}, ErrInvalidToken
	}

	if claims.IsExpiredAt(now(a.Clock)) {
		return domain.User{}, ErrTokenExpired
	}

	revoked, err := a.Revocations.IsRevoked(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	if revoked {
		return domain.User{}, ErrTokenRevoked
	}

	user, err = a.Users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrPrincipalNotFound
		}
		return domain.User{}, fmt.Errorf("load principal: %w", err)
	}
	return user, nil
}
