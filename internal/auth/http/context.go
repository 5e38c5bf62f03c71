package http

import (
	"context"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
)

type ctxKey int

const (
	ctxKeyPrincipal ctxKey = iota
	ctxKeyAccessToken
)

func contextWithPrincipal(ctx context.Context, user domain.User, token string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyPrincipal, user)
	return context.WithValue(ctx, ctxKeyAccessToken, token)
}

// PrincipalFromContext returns the user authenticated for this request. The
// second value is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyPrincipal).(domain.User)
	return u, ok && !u.IsZero()
}

// AccessTokenFromContext returns the raw access token the principal was
// authenticated with.
func AccessTokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(ctxKeyAccessToken).(string)
	return tok
}
