package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/armandorgr/Project-manager/internal/auth/http"
	"github.com/armandorgr/Project-manager/internal/auth/service"
	"github.com/armandorgr/Project-manager/internal/auth/store"
	redisdrv "github.com/armandorgr/Project-manager/internal/auth/store/drivers/redis"
	"github.com/armandorgr/Project-manager/internal/auth/store/drivers/sqlite"
	"github.com/armandorgr/Project-manager/pkg/cryptox"
	"github.com/armandorgr/Project-manager/pkg/jwtx"
	"github.com/armandorgr/Project-manager/pkg/metricsx"
	"github.com/armandorgr/Project-manager/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	metricsNamespace = "pm"
)

// Application encapsulates the API with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger
	clock  service.Clock

	// Core dependencies
	db          store.Store
	revocations store.RevokedTokens
	redis       *redisdrv.RevokedTokens // nil unless REVOCATION_BACKEND=redis
	codec       *jwtx.Codec
	hasher      *cryptox.PasswordHasher
	metrics     *metricsx.Metrics

	// Services
	sessionService      *service.SessionService
	userService         *service.UserService
	membershipService   *service.MembershipService
	authenticator       *service.Authenticator
	authorizer          *service.RoleAuthorizer
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:   cfg,
		clock: service.SystemClock{},
		logger: slogx.New(slogx.Config{
			Service: "project-manager",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := app.initRevocation(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.metrics = metricsx.New(metricsNamespace, true)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("api starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"revocation_backend", app.cfg.RevocationBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("api stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initRevocation selects where the access-token denylist lives.
func (app *Application) initRevocation(ctx context.Context) error {
	if app.cfg.RevocationBackend != RevocationRedis {
		app.revocations = app.db.RevokedTokens()
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisdrv.DefaultDialTimeout)
	defer cancel()

	rt, err := redisdrv.NewRevokedTokens(ctx, redisdrv.Config{
		Addr:      app.cfg.RedisAddr,
		Password:  app.cfg.RedisPassword,
		DB:        app.cfg.RedisDB,
		KeyPrefix: app.cfg.RedisKeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize redis revocation store: %w", err)
	}
	app.redis = rt
	app.revocations = rt

	app.logger.Info("revocation store connected", "backend", RevocationRedis, "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	codec, err := jwtx.NewCodec([]byte(app.cfg.Secret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	app.logger.Info("token codec ready", "issuer", codec.Issuer(), "access_ttl", app.cfg.AccessTTL, "refresh_ttl", app.cfg.RefreshTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	revocations := &service.RevocationService{
		Store: app.revocations,
		Clock: app.clock,
	}
	refresh := &service.RefreshTokenService{
		Store: app.db,
		TTL:   app.cfg.RefreshTTL,
		Clock: app.clock,
	}

	app.sessionService = &service.SessionService{
		Store:         app.db,
		Codec:         app.codec,
		Hasher:        app.hasher,
		RefreshTokens: refresh,
		Revocations:   revocations,
		Clock:         app.clock,
		AccessTTL:     app.cfg.AccessTTL,
		Events:        app.metrics,
	}
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: app.hasher,
		Clock:  app.clock,
		Events: app.metrics,
	}
	app.membershipService = &service.MembershipService{
		Store: app.db,
		Clock: app.clock,
	}
	app.authenticator = &service.Authenticator{
		Codec:       app.codec,
		Revocations: revocations,
		Users:       app.db.Users(),
		Clock:       app.clock,
		Events:      app.metrics,
	}
	app.authorizer = &service.RoleAuthorizer{
		Memberships: app.db.Memberships(),
		Events:      app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.revocations,
		app.clock,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.revocations,
		app.metrics,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.MembershipService = app.membershipService
	router.Authenticator = app.authenticator
	router.Authorizer = app.authorizer
	router.Clock = app.clock
	router.Cookies = httpapi.CookieConfig{Secure: app.cfg.CookieSecure}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
