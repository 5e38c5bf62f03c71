package domain

import (
	"errors"
	"strings"
	"time"
)

// ProjectRole is a principal's role within one project. Roles are totally
// ordered: RoleUser < RoleAdmin.
type ProjectRole int

const (
	RoleNone ProjectRole = iota
	RoleUser
	RoleAdmin
)

// ErrUnknownRole is returned by ParseProjectRole.
var ErrUnknownRole = errors.New("domain: unknown project role")

// ParseProjectRole maps "USER"/"ADMIN" (case-insensitive) to a role.
func ParseProjectRole(s string) (ProjectRole, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "USER":
		return RoleUser, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return RoleNone, ErrUnknownRole
	}
}

func (r ProjectRole) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return ""
	}
}

// Valid reports whether r is an assignable role.
func (r ProjectRole) Valid() bool { return r == RoleUser || r == RoleAdmin }

// AtLeast reports whether r grants everything required grants.
func (r ProjectRole) AtLeast(required ProjectRole) bool {
	return r.Valid() && r >= required
}

// Membership links a user to a project with a role.
type Membership struct {
	ProjectID string
	UserID    string
	Role      ProjectRole
	CreatedAt time.Time
}
