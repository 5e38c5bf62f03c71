package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/armandorgr/Project-manager/pkg/jwtx"
)

// Revocation backends.
const (
	RevocationSQLite = "sqlite"
	RevocationRedis  = "redis"
)

type Config struct {
	Issuer       string        // Issuer claim stamped on access tokens (default: project-manager)
	Secret       string        // Required: HS512 signing secret, at least 64 bytes
	AccessTTL    time.Duration // Access token lifetime (default: 10m)
	RefreshTTL   time.Duration // Refresh token lifetime (default: 24h)
	CookieSecure bool          // Mark token cookies Secure (default: true)

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	RevocationBackend string // Denylist storage (sqlite, redis) (default: sqlite)
	RedisAddr         string // Redis address, required for the redis backend
	RedisPassword     string
	RedisDB           int
	RedisKeyPrefix    string // (default: pm:)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("AUTH_ISSUER", "project-manager"),
		Secret:       os.Getenv("AUTH_SECRET"),
		AccessTTL:    getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:   getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		CookieSecure: getEnvBoolOrDefault("AUTH_COOKIE_SECURE", true),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		RevocationBackend: strings.ToLower(getEnvOrDefault("REVOCATION_BACKEND", RevocationSQLite)),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvIntOrDefault("REDIS_DB", 0),
		RedisKeyPrefix:    getEnvOrDefault("REDIS_KEY_PREFIX", "pm:"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every setting the application cannot start with.
func (c Config) Validate() error {
	var errs []error
	if len(c.Secret) < jwtx.MinSecretSize {
		errs = append(errs, fmt.Errorf("AUTH_SECRET must be at least %d bytes", jwtx.MinSecretSize))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TTL must be positive"))
	}
	if c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_TTL must be positive"))
	}
	switch c.RevocationBackend {
	case RevocationSQLite:
	case RevocationRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis revocation backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown REVOCATION_BACKEND %q", c.RevocationBackend))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
