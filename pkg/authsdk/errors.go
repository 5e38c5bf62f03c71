package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/armandorgr/Project-manager/pkg/httpx"
)

// Error codes carried in the "code" field of an error body.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeValidation          = "VALIDATION_ERROR"
	CodeBadCredentials      = "BAD_CREDENTIALS"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired = "REFRESH_TOKEN_EXPIRED"
	CodeTokenRevoked        = "TOKEN_REVOKED"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodePrincipalNotFound   = "PRINCIPAL_NOT_FOUND"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeNotAMember          = "NOT_A_MEMBER"
	CodeInsufficientRole    = "INSUFFICIENT_ROLE"
	CodeMisconfiguredGuard  = "MISCONFIGURED_GUARD"
	CodeUsernameTaken       = "USERNAME_TAKEN"
	CodeEmailTaken          = "EMAIL_TAKEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeServerError         = "SERVER_ERROR"
)

// StatusError is the value of the "status" field on every error body.
const StatusError = "ERROR"

// APIError is the error body returned by every endpoint:
//
//	{"status":"ERROR","code":"TOKEN_REVOKED","message":"..."}
//
// The server writes it with WriteError; the client returns it from failed
// calls so callers can match on Code or compare with errors.Is.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any APIError with the same Code, so a decoded error compares
// equal to the predefined value.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy of e carrying per-field messages.
func (e *APIError) WithDetails(details map[string]string) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *APIError) WithMessage(msg string) *APIError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WriteError writes e as the JSON error body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, errorBody{
		Status:  StatusError,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

type errorBody struct {
	Status  string            `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

var (
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeBadRequest,
		Message:    "the request is malformed",
	}
	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    "request validation failed",
	}
	ErrBadCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeBadCredentials,
		Message:    "invalid username or password",
	}
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeInvalidRefreshToken,
		Message:    "refresh token is not valid",
	}
	ErrRefreshTokenExpired = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeRefreshTokenExpired,
		Message:    "refresh token has expired, please log in again",
	}
	ErrTokenRevoked = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeTokenRevoked,
		Message:    "access token has been revoked",
	}
	ErrTokenExpired = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeTokenExpired,
		Message:    "access token has expired",
	}
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidToken,
		Message:    "access token is not valid",
	}
	ErrPrincipalNotFound = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodePrincipalNotFound,
		Message:    "the token's user no longer exists",
	}
	ErrUnauthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthenticated,
		Message:    "authentication required",
	}
	ErrNotAMember = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeNotAMember,
		Message:    "you are not a member of this project",
	}
	ErrInsufficientRole = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeInsufficientRole,
		Message:    "your role in this project does not allow this action",
	}
	ErrMisconfiguredGuard = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeMisconfiguredGuard,
		Message:    "internal server error",
	}
	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       CodeUsernameTaken,
		Message:    "username is already taken",
	}
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       CodeEmailTaken,
		Message:    "email is already registered",
	}
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeUserNotFound,
		Message:    "user not found",
	}
	ErrMethodNotAllowed = &APIError{
		StatusCode: http.StatusMethodNotAllowed,
		Code:       CodeMethodNotAllowed,
		Message:    "method not allowed",
	}
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not in the error format fall back to a SERVER_ERROR built from the
// status line.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       eb.Code,
			Message:    eb.Message,
			Details:    eb.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
