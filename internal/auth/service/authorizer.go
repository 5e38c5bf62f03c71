package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
)

// RoleAuthorizer decides whether a principal holds at least a given role in
// a project.
type RoleAuthorizer struct {
	Memberships store.Memberships
	Events      EventRecorder
}

// Authorize returns nil when principal's role in projectID is at least
// required.
func (a *RoleAuthorizer) Authorize(ctx context.Context, principal domain.User, projectID string, required domain.ProjectRole) (err error) {
	defer func() { record(a.Events, eventAuthorize, err) }()

	if principal.IsZero() {
		return ErrUnauthenticated
	}
	if projectID == "" {
		return ErrMisconfiguredGuard
	}

	role, err := a.Memberships.GetRole(ctx, principal.ID, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("load membership: %w", err)
	}

	if !role.AtLeast(required) {
		return ErrInsufficientRole
	}
	return nil
}
