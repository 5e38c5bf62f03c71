package domain

import "time"

// User is a registered principal. Username and Email are both unique.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsZero reports whether u is the empty (anonymous) principal.
func (u User) IsZero() bool { return u.ID == "" && u.Username == "" }
