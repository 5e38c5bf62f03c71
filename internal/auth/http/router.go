package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	"github.com/armandorgr/Project-manager/pkg/httpx"
	"github.com/armandorgr/Project-manager/pkg/metricsx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metricsx.Metrics

	store       store.Store
	revocations store.RevokedTokens

	SessionService    *service.SessionService
	UserService       *service.UserService
	MembershipService *service.MembershipService
	Authenticator     *service.Authenticator
	Authorizer        *service.RoleAuthorizer
	Clock             service.Clock

	Cookies CookieConfig

	// Rate limit profiles; NewRouter copies the httpx defaults.
	StrictLimit   httpx.RateLimitConfig
	ModerateLimit httpx.RateLimitConfig
	LenientLimit  httpx.RateLimitConfig
}

// NewRouter builds a router. revocations may be nil when the denylist lives
// in st. metrics may be nil.
func NewRouter(
	buildVersion string,
	st store.Store,
	revocations store.RevokedTokens,
	metrics *metricsx.Metrics,
	logger *slog.Logger,
) *Router {
	if revocations == nil {
		revocations = st.RevokedTokens()
	}

	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		metrics:       metrics,
		store:         st,
		revocations:   revocations,
		Cookies:       CookieConfig{Secure: true},
		StrictLimit:   httpx.StrictLimit,
		ModerateLimit: httpx.ModerateLimit,
		LenientLimit:  httpx.LenientLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every endpoint. Services must be set beforehand.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProjects()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with per-route metrics.
func (r *Router) handle(pattern string, h http.Handler) {
	r.Mux.Handle(pattern, r.metrics.Instrument(pattern, h))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Sessions: r.SessionService,
		Users:    r.UserService,
		Cookies:  r.Cookies,
		Clock:    r.Clock,
	}

	// POST /register - strict rate limit by IP (account creation)
	r.handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP + username to slow credential stuffing
	r.handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.StrictLimit, "username"),
		),
	)

	// POST /refresh - moderate; authenticated by the refresh cookie alone
	r.handle("POST /api/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.ModerateLimit),
		),
	)

	// POST /logout - moderate; works with stale or missing tokens
	r.handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(r.ModerateLimit),
		),
	)

	r.handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			AuthnMiddleware(r.Authenticator),
			RequireAuth(),
			httpx.RateLimitByUser(r.LenientLimit),
		),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectHandler{Members: r.MembershipService}
	projectID := httpx.PathValue(ProjectIDParam)

	r.handle("POST /api/project",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			AuthnMiddleware(r.Authenticator),
			RequireAuth(),
			httpx.RateLimitByUser(r.LenientLimit),
		),
	)

	r.handle("GET /api/project/{projectId}/role",
		httpx.Chain(http.HandlerFunc(h.HandleRole),
			AuthnMiddleware(r.Authenticator),
			RequireAuth(),
			RequireProjectRole(r.Authorizer, domain.RoleUser, projectID),
			httpx.RateLimitByUser(r.LenientLimit),
		),
	)

	r.handle("GET /api/project/{projectId}/members",
		httpx.Chain(http.HandlerFunc(h.HandleListMembers),
			AuthnMiddleware(r.Authenticator),
			RequireAuth(),
			RequireProjectRole(r.Authorizer, domain.RoleUser, projectID),
			httpx.RateLimitByUser(r.LenientLimit),
		),
	)

	r.handle("POST /api/project/{projectId}/members",
		httpx.Chain(http.HandlerFunc(h.HandleAddMember),
			AuthnMiddleware(r.Authenticator),
			RequireAuth(),
			RequireProjectRole(r.Authorizer, domain.RoleAdmin, projectID),
			httpx.RateLimitByUser(r.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.revocations),
			httpx.RateLimitByIP(r.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
