package authsdk

import "time"

// StatusSuccess is the value of the "status" field on every success body.
const StatusSuccess = "SUCCESS"

// Response is the success envelope:
//
//	{"status":"SUCCESS","message":"...","data":{...}}
type Response[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// NewResponse wraps data in a success envelope.
func NewResponse[T any](message string, data T) Response[T] {
	return Response[T]{Status: StatusSuccess, Message: message, Data: data}
}

// ============================================================================
// Requests
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=128"`
}

// AddMemberRequest is the body of POST /api/project/{projectId}/members.
// At least one of Username and Email must be set; Username wins when both
// are.
type AddMemberRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=32"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// ============================================================================
// Responses
// ============================================================================

// UserResponse is the public view of a principal.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is returned by login and refresh. The tokens themselves
// travel in cookies only.
type SessionResponse struct {
	Username         string    `json:"username"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// MembershipResponse describes one principal's role in one project.
type MembershipResponse struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database   string `json:"database"`
	Revocation string `json:"revocation"`
}

// HealthResponse is returned by /livez and /readyz. It is not wrapped in
// the success envelope.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
