package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
	"github.com/armandorgr/Project-manager/pkg/idx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

type UserService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Clock  Clock
	Events EventRecorder
}

// Register creates a principal. Username and email must both be unused.
func (s *UserService) Register(ctx context.Context, username, email, password string) (user domain.User, err error) {
	defer func() { record(s.Events, eventRegister, err) }()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	at := now(s.Clock)
	user = domain.User{
		ID:           idx.NewAt(at).String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    at,
		UpdatedAt:    at,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			// Lost a race with a concurrent registration.
			if errors.Is(err, store.ErrAlreadyExists) {
				if strings.Contains(err.Error(), "email") {
					return ErrEmailTaken
				}
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func validateRegistration(username, email, password string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidRegistration, MinUsernameLength, MaxUsernameLength)
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return fmt.Errorf("%w: username may only contain letters, digits, '.', '_' and '-'", ErrInvalidRegistration)
		}
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrInvalidRegistration)
	}

	n = utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidRegistration, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
