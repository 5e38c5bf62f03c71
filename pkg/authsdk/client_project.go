package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateProject allocates a project owned by the caller, who becomes ADMIN.
func (c *Client) CreateProject(ctx context.Context) (*MembershipResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/project", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[MembershipResponse](resp, http.StatusCreated)
}

// ProjectRole returns the caller's role in projectID.
func (c *Client) ProjectRole(ctx context.Context, projectID string) (*MembershipResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/project/"+url.PathEscape(projectID)+"/role", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[MembershipResponse](resp, http.StatusOK)
}

// AddMember adds a member to projectID or changes an existing member's role.
// The caller must be ADMIN of the project.
func (c *Client) AddMember(ctx context.Context, projectID string, req AddMemberRequest) (*MembershipResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/project/"+url.PathEscape(projectID)+"/members", req)
	if err != nil {
		return nil, err
	}
	return decodeData[MembershipResponse](resp, http.StatusOK)
}

// ListMembers returns every member of projectID. Any member may call it.
func (c *Client) ListMembers(ctx context.Context, projectID string) ([]MembershipResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/project/"+url.PathEscape(projectID)+"/members", nil)
	if err != nil {
		return nil, err
	}
	members, err := decodeData[[]MembershipResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return *members, nil
}
