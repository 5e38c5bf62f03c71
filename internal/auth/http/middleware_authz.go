package http

import (
	"context"
	"net/http"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/pkg/httpx"
)

// Authorizer decides project-scoped access. *service.RoleAuthorizer
// satisfies it.
type Authorizer interface {
	Authorize(ctx context.Context, principal domain.User, projectID string, required domain.ProjectRole) error
}

// RequireProjectRole lets the request through only when the principal holds
// at least required in the project that extract names. It must run after
// AuthnMiddleware. A nil authorizer or extractor is a wiring bug and panics
// when the route is built.
func RequireProjectRole(authz Authorizer, required domain.ProjectRole, extract httpx.ResourceIDFunc) httpx.Middleware {
	if authz == nil {
		panic("http: RequireProjectRole needs an authorizer")
	}
	if extract == nil {
		panic("http: RequireProjectRole needs a resource id extractor")
	}
	if !required.Valid() {
		panic("http: RequireProjectRole needs a valid role")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal, _ := PrincipalFromContext(ctx)

			if err := authz.Authorize(ctx, principal, extract(r), required); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
