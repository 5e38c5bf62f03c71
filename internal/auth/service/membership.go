package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/idx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// MembershipService manages who belongs to which project.
type MembershipService struct {
	Store store.Store
	Clock Clock
}

// CreateProject allocates a new project id and makes owner its ADMIN.
func (s *MembershipService) CreateProject(ctx context.Context, owner domain.User) (domain.Membership, error) {
	if owner.IsZero() {
		return domain.Membership{}, ErrUnauthenticated
	}

	at := now(s.Clock)
	m := domain.Membership{
		ProjectID: idx.NewAt(at).String(),
		UserID:    owner.ID,
		Role:      domain.RoleAdmin,
		CreatedAt: at,
	}
	if err := s.Store.Memberships().UpsertMembership(ctx, m); err != nil {
		return domain.Membership{}, fmt.Errorf("create project: %w", err)
	}

	slogx.FromContext(ctx).Info("project created",
		slog.String("project_id", m.ProjectID),
		slog.String("user_id", owner.ID),
	)
	return m, nil
}

// RoleOf returns the role userID holds in projectID, or ErrNotAMember.
func (s *MembershipService) RoleOf(ctx context.Context, userID, projectID string) (domain.ProjectRole, error) {
	role, err := s.Store.Memberships().GetRole(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoleNone, ErrNotAMember
		}
		return domain.RoleNone, fmt.Errorf("load membership: %w", err)
	}
	return role, nil
}

// ListMembers returns the members of projectID ordered by join time.
func (s *MembershipService) ListMembers(ctx context.Context, projectID string) ([]domain.Membership, error) {
	members, err := s.Store.Memberships().ListMemberships(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return members, nil
}

// AddMember grants role in projectID to the user named by username or, when
// username is empty, by email. An existing member has its role replaced.
func (s *MembershipService) AddMember(ctx context.Context, projectID, username, email string, role domain.ProjectRole) (domain.Membership, error) {
	if !role.Valid() {
		return domain.Membership{}, ErrInvalidRole
	}
	if username == "" && email == "" {
		return domain.Membership{}, ErrUserNotFound
	}

	var m domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var (
			user domain.User
			err  error
		)
		if username != "" {
			user, err = tx.Users().GetUserByUsername(ctx, username)
		} else {
			user, err = tx.Users().GetUserByEmail(ctx, email)
		}
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		m = domain.Membership{
			ProjectID: projectID,
			UserID:    user.ID,
			Role:      role,
			CreatedAt: now(s.Clock),
		}
		if err := tx.Memberships().UpsertMembership(ctx, m); err != nil {
			return fmt.Errorf("upsert membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Membership{}, err
	}

	slogx.FromContext(ctx).Info("member added",
		slog.String("project_id", projectID),
		slog.String("user_id", m.UserID),
		slog.String("role", role.String()),
	)
	return m, nil
}
