package service

import (
	"context"
	"testing"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestMembershipService(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	owner := h.seedUser(t, "owner", "pw")
	bob := h.seedUser(t, "bob", "pw")

	project, err := h.Members.CreateProject(ctx, owner)
	require.NoError(t, err)
	require.NotEmpty(t, project.ProjectID)
	require.Equal(t, domain.RoleAdmin, project.Role)

	role, err := h.Members.RoleOf(ctx, owner.ID, project.ProjectID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	_, err = h.Members.RoleOf(ctx, bob.ID, project.ProjectID)
	require.ErrorIs(t, err, ErrNotAMember)

	t.Run("add by email", func(t *testing.T) {
		m, err := h.Members.AddMember(ctx, project.ProjectID, "", bob.Email, domain.RoleUser)
		require.NoError(t, err)
		require.Equal(t, bob.ID, m.UserID)

		role, err := h.Members.RoleOf(ctx, bob.ID, project.ProjectID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, role)
	})

	t.Run("promote by username", func(t *testing.T) {
		_, err := h.Members.AddMember(ctx, project.ProjectID, "bob", "", domain.RoleAdmin)
		require.NoError(t, err)

		role, err := h.Members.RoleOf(ctx, bob.ID, project.ProjectID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := h.Members.AddMember(ctx, project.ProjectID, "carol", "", domain.RoleUser)
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = h.Members.AddMember(ctx, project.ProjectID, "", "", domain.RoleUser)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		members, err := h.Members.ListMembers(ctx, project.ProjectID)
		require.NoError(t, err)
		ids := make([]string, 0, len(members))
		for _, m := range members {
			require.Equal(t, project.ProjectID, m.ProjectID)
			ids = append(ids, m.UserID)
		}
		require.ElementsMatch(t, []string{owner.ID, bob.ID}, ids)

		empty, err := h.Members.ListMembers(ctx, "no-such-project")
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := h.Members.AddMember(ctx, project.ProjectID, "bob", "", domain.RoleNone)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("anonymous owner", func(t *testing.T) {
		_, err := h.Members.CreateProject(ctx, domain.User{})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
