//go:build e2e

package api_test

import (
	"testing"

	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestProjectMembership(t *testing.T) {
	baseURL := setupAPIContainer(t)
	ctx := t.Context()

	owner, ownerUser := registerAndLogin(t, baseURL, "owner")
	member, memberUser := registerAndLogin(t, baseURL, "member")

	project, err := owner.CreateProject(ctx)
	require.NoError(t, err)
	require.Equal(t, ownerUser.ID, project.UserID)
	require.Equal(t, "ADMIN", project.Role)

	_, err = member.ProjectRole(ctx, project.ProjectID)
	requireAPIError(t, err, authsdk.ErrNotAMember)

	added, err := owner.AddMember(ctx, project.ProjectID, authsdk.AddMemberRequest{
		Email: "member@example.com",
		Role:  "USER",
	})
	require.NoError(t, err)
	require.Equal(t, memberUser.ID, added.UserID)

	role, err := member.ProjectRole(ctx, project.ProjectID)
	require.NoError(t, err)
	require.Equal(t, "USER", role.Role)

	members, err := member.ListMembers(ctx, project.ProjectID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// A plain member cannot manage the project.
	_, err = member.AddMember(ctx, project.ProjectID, authsdk.AddMemberRequest{
		Username: "owner",
		Role:     "USER",
	})
	requireAPIError(t, err, authsdk.ErrInsufficientRole)

	_, err = owner.AddMember(ctx, project.ProjectID, authsdk.AddMemberRequest{
		Username: "ghost",
		Role:     "USER",
	})
	requireAPIError(t, err, authsdk.ErrUserNotFound)
}
