// Package db opens the GORM database the application stores orders and route
// quotes in: Postgres through the pgx driver, or a SQLite file for local runs.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"shipquote/internal/adapters/out/postgres/orderrepo"
	"shipquote/internal/adapters/out/postgres/routecache"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pingTimeout = 5 * time.Second

// PostgresConfig holds the connection settings read from the environment.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// URL renders the settings as a postgres:// connection string.
func (c PostgresConfig) URL() string {
	sslMode := c.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// OpenPostgres opens a pooled pgx connection and hands it to GORM.
func OpenPostgres(ctx context.Context, databaseURL string, log *slog.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(log))
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm on postgres: %w", err)
	}
	return gormDB, nil
}

// OpenSQLite opens (and creates if needed) a SQLite database file.
// SQLite allows one writer, so the pool is limited to a single connection.
func OpenSQLite(path string, log *slog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	return gormDB, nil
}

// Migrate creates or updates the orders and route_quotes tables.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &routecache.RouteQuoteDTO{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig(log *slog.Logger) *gorm.Config {
	if log == nil {
		return &gorm.Config{Logger: logger.Discard}
	}
	return &gorm.Config{
		Logger: logger.New(slogWriter{log: log.With("component", "gorm")}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// slogWriter lets GORM's logger write through slog.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
