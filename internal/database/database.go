// Package database contains the logic for establishing
// the connection to the SQL engine that stores the classroom schema.
//
// Two engines are supported behind one *sql.DB handle:
//   - SQLite through the embedded, pure-Go modernc driver (default)
//   - PostgreSQL through a pgx connection pool, bridged to database/sql
//
// It handles:
//   - building a DSN from config
//   - creating the pgx pool and wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
//   - creating the schema if absent, and seeding demonstration data
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/deppfellow/classroom/internal/config"
	loggerConfig "github.com/deppfellow/classroom/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Database is the process-scoped handle to the SQL engine.
//
// DB is what repositories query. Pool is set only for PostgreSQL and
// owns the connections behind DB.
type Database struct {
	DB     *sql.DB
	Pool   *pgxpool.Pool
	Driver string
	log    *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig.
// This type acts as an adapter so you can run multiple tracer implementations:
//   - New Relic tracer (for distributed tracing/APM)
//   - tracelog.TraceLog (for local SQL logging in "local" env)
type multiTracer struct {
	tracers []any
}

// TraceQueryStart implements pgx tracer interface.
//
// It calls every tracer that implements TraceQueryStart, threading the
// context through each call.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

// TraceQueryEnd implements pgx tracer interface.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New opens the database selected by cfg.Database.Driver and pings it.
//
// Inputs:
//   - cfg: application config
//   - logger: main app logger
//   - loggerService: optional New Relic service (nil if not configured)
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		database *Database
		err      error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		database, err = newSQLite(cfg, logger)
	case config.DriverPostgres:
		database, err = newPostgres(cfg, logger, loggerService)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", database.Driver).Msg("connected to the database")

	return database, nil
}

// SQLiteDSN builds the modernc DSN for path, enabling foreign keys.
// ":memory:" maps to a private in-memory database.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func newSQLite(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	path := cfg.Database.Path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection for the whole process; an in-memory database only
	// exists on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &Database{DB: db, Driver: config.DriverSQLite, log: logger}, nil
}

// PostgresDSN builds the postgres URL for cfg.
//
// User and password go through url.UserPassword, so characters like ':',
// '@' or ' ' are percent-encoded the way the userinfo part requires.
func PostgresDSN(cfg config.DatabaseConfig) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// newPostgres creates a pgx pool with instrumentation and bridges it to database/sql.
//
// Behavior:
//   - Parse DSN into pgxpool config, apply pool tuning
//   - Attach New Relic tracer if available
//   - In local env: attach SQL tracelogger (and chain tracers if both exist)
//   - Create pool and wrap it with stdlib.OpenDBFromPool
func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(PostgresDSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second
	}

	// New Relic segments are recorded for queries whose context carries a
	// transaction; the report handler starts one per report.
	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL query logging is very noisy, which is why it's only in local.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	return &Database{
		DB:     stdlib.OpenDBFromPool(pool),
		Pool:   pool,
		Driver: config.DriverPostgres,
		log:    logger,
	}, nil
}

// Ping verifies the engine is reachable.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.DB.PingContext(ctx)
}

// Close releases the handle and, for PostgreSQL, the pool behind it.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")
	err := db.DB.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}
