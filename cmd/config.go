package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipquote/internal/platform/db"
	"shipquote/internal/pkg/errs"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	RouteProviderGoogle = "google"
	RouteProviderORS    = "ors"
	RouteProviderStatic = "static"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	RouteProvider    string
	GoogleMapsAPIKey string
	ORSAPIKey        string
	StaticRoutesFile string
	RouteCacheTTL    time.Duration

	TelegramBotToken      string
	TelegramAPIURL        string
	TelegramWebhookSecret string
	SupportContact        string

	TiersFile            string
	SessionIdleTimeout   time.Duration
	SessionSweepSchedule string

	LogLevel  string
	LogFormat string
}

// Postgres returns the database settings in the form the db package takes.
func (c Config) Postgres() db.PostgresConfig {
	return db.PostgresConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SslMode:  c.DBSslMode,
	}
}

// LoadConfig reads the configuration through getenv (os.Getenv in production)
// and applies defaults. All problems are reported at once.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var errList []error
	duration := func(key, fallback string) time.Duration {
		raw := env(key, fallback)
		d, err := time.ParseDuration(raw)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return d
	}

	c := Config{
		HTTPPort: env("HTTP_PORT", "8080"),

		DBDriver:   strings.ToLower(env("DB_DRIVER", DBDriverPostgres)),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", ""),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", ""),
		DBSslMode:  env("DB_SSLMODE", "disable"),
		SQLitePath: env("SQLITE_PATH", "shipquote.db"),

		RouteProvider:    strings.ToLower(env("ROUTE_PROVIDER", RouteProviderGoogle)),
		GoogleMapsAPIKey: env("GOOGLE_MAPS_API_KEY", ""),
		ORSAPIKey:        env("ORS_API_KEY", ""),
		StaticRoutesFile: env("STATIC_ROUTES_FILE", ""),
		RouteCacheTTL:    duration("ROUTE_CACHE_TTL", "24h"),

		TelegramBotToken:      env("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL:        env("TELEGRAM_API_URL", ""),
		TelegramWebhookSecret: env("TELEGRAM_WEBHOOK_SECRET", ""),
		SupportContact:        env("SUPPORT_CONTACT", ""),

		TiersFile:            env("TIERS_FILE", ""),
		SessionIdleTimeout:   duration("SESSION_IDLE_TIMEOUT", "30m"),
		SessionSweepSchedule: env("SESSION_SWEEP_SCHEDULE", "0 * * * * *"),

		LogLevel:  strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(env("LOG_FORMAT", "json")),
	}

	switch c.DBDriver {
	case DBDriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_USER and DB_NAME"))
		}
	case DBDriverSQLite:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("DB_DRIVER",
			fmt.Errorf("%q is not one of postgres, sqlite", c.DBDriver)))
	}

	switch c.RouteProvider {
	case RouteProviderGoogle:
		if c.GoogleMapsAPIKey == "" {
			errList = append(errList, errs.NewValueIsRequiredError("GOOGLE_MAPS_API_KEY"))
		}
	case RouteProviderORS:
		if c.ORSAPIKey == "" {
			errList = append(errList, errs.NewValueIsRequiredError("ORS_API_KEY"))
		}
	case RouteProviderStatic:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ROUTE_PROVIDER",
			fmt.Errorf("%q is not one of google, ors, static", c.RouteProvider)))
	}

	if c.RouteCacheTTL < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ROUTE_CACHE_TTL",
			errors.New("must not be negative")))
	}
	if c.SessionIdleTimeout < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("SESSION_IDLE_TIMEOUT",
			errors.New("must not be negative")))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
