package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/store/drivers/sqlite"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
	"github.com/armandorgr/Project-manager/pkg/idx"
	"github.com/armandorgr/Project-manager/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	t0         = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testSecret = []byte(strings.Repeat("k", jwtx.MinSecretSize))
)

const (
	testIssuer     = "project-manager-test"
	testAccessTTL  = 600 * time.Second
	testRefreshTTL = 86400 * time.Second
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type eventCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (e *eventCounter) AuthEvent(event, outcome string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.counts == nil {
		e.counts = make(map[string]int)
	}
	e.counts[event+"/"+outcome]++
}

func (e *eventCounter) Count(event, outcome string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts[event+"/"+outcome]
}

type harness struct {
	Store       *sqlite.Store
	Clock       *fakeClock
	Codec       *jwtx.Codec
	Hasher      *cryptox.PasswordHasher
	Events      *eventCounter
	Revocations *RevocationService
	Refresh     *RefreshTokenService
	Sessions    *SessionService
	Authn       *Authenticator
	Authz       *RoleAuthorizer
	Members     *MembershipService
	Users       *UserService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(testSecret, testIssuer)
	require.NoError(t, err)

	h := &harness{
		Store:  st,
		Clock:  newFakeClock(t0),
		Codec:  codec,
		Hasher: cryptox.NewPasswordHasher("test-pepper"),
		Events: &eventCounter{},
	}
	h.Revocations = &RevocationService{Store: st.RevokedTokens(), Clock: h.Clock}
	h.Refresh = &RefreshTokenService{Store: st, TTL: testRefreshTTL, Clock: h.Clock}
	h.Sessions = &SessionService{
		Store:         st,
		Codec:         codec,
		Hasher:        h.Hasher,
		RefreshTokens: h.Refresh,
		Revocations:   h.Revocations,
		Clock:         h.Clock,
		AccessTTL:     testAccessTTL,
		Events:        h.Events,
	}
	h.Authn = &Authenticator{
		Codec:       codec,
		Revocations: h.Revocations,
		Users:       st.Users(),
		Clock:       h.Clock,
		Events:      h.Events,
	}
	h.Authz = &RoleAuthorizer{Memberships: st.Memberships(), Events: h.Events}
	h.Members = &MembershipService{Store: st, Clock: h.Clock}
	h.Users = &UserService{Store: st, Hasher: h.Hasher, Clock: h.Clock, Events: h.Events}
	return h
}

// seedUser inserts a user directly, bypassing registration rules.
func (h *harness) seedUser(t *testing.T, username, password string) domain.User {
	t.Helper()

	hash, err := h.Hasher.Hash(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CreatedAt:    h.Clock.Now(),
		UpdatedAt:    h.Clock.Now(),
	}
	require.NoError(t, h.Store.Users().CreateUser(context.Background(), u))
	return u
}

func (h *harness) refreshTokenCount(t *testing.T, userID string) int {
	t.Helper()

	n, err := h.Store.RefreshTokens().CountRefreshTokensByUser(context.Background(), userID)
	require.NoError(t, err)
	return n
}
