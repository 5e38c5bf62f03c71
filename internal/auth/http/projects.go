package http

import (
	"net/http"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/httpx"
)

// ProjectIDParam is the path wildcard naming the guarded project.
const ProjectIDParam = "projectId"

// ProjectHandler serves the project membership endpoints.
type ProjectHandler struct {
	Members *service.MembershipService
}

// HandleCreate serves POST /api/project. The caller becomes ADMIN of the
// new project.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	m, err := h.Members.CreateProject(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.NewResponse("Project created", membershipResponse(m)))
}

// HandleRole serves GET /api/project/{projectId}/role.
func (h *ProjectHandler) HandleRole(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}
	projectID := r.PathValue(ProjectIDParam)

	role, err := h.Members.RoleOf(r.Context(), user.ID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("", authsdk.MembershipResponse{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      role.String(),
	}))
}

// HandleListMembers serves GET /api/project/{projectId}/members.
func (h *ProjectHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.ListMembers(r.Context(), r.PathValue(ProjectIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]authsdk.MembershipResponse, 0, len(members))
	for _, m := range members {
		out = append(out, membershipResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("", out))
}

// HandleAddMember serves POST /api/project/{projectId}/members.
func (h *ProjectHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var req authsdk.AddMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if details := validateMemberTarget(req); details != nil {
		authsdk.ErrValidation.WithDetails(details).WriteError(w)
		return
	}

	role, err := domain.ParseProjectRole(req.Role)
	if err != nil {
		authsdk.ErrValidation.WithDetails(map[string]string{"role": "oneof"}).WriteError(w)
		return
	}

	m, err := h.Members.AddMember(r.Context(), r.PathValue(ProjectIDParam), req.Username, req.Email, role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.NewResponse("Member saved", membershipResponse(m)))
}

func membershipResponse(m domain.Membership) authsdk.MembershipResponse {
	return authsdk.MembershipResponse{
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      m.Role.String(),
	}
}
