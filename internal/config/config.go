// Package config manages environment variables.
//
// It reads variables from the process environment (and from a `.env` file
// when present), loads them into structured Go types, and validates them
// so the tool fails fast on bad configuration.
//
// Every value has a default: with an empty environment the tool opens
// `classroom.db` with the embedded SQLite engine, seeds it and runs every
// report.
package config

import (
	"strings"

	"github.com/deppfellow/classroom/internal/errs"
	"github.com/deppfellow/classroom/internal/validation"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix CLASSROOM_. Keys are lowercased, the
	prefix removed, and a double underscore marks a nesting level:

	  CLASSROOM_DATABASE__DRIVER         -> database.driver
	  CLASSROOM_DATABASE__SSL_MODE       -> database.ssl_mode
	  CLASSROOM_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Single underscores stay, so snake_case keys survive the mapping.

	List keys take comma-separated values:

	  CLASSROOM_OBSERVABILITY__HEALTH_CHECKS__CHECKS=database,schema
*/

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
const EnvPrefix = "CLASSROOM_"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by the validation package.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production"`
}

// DatabaseConfig selects the SQL engine and carries its connection settings.
//
// Path is used by the embedded SQLite engine (":memory:" is allowed).
// Host, Port, User, Password, Name and SSLMode are used by PostgreSQL.
// Pool tuning only applies to PostgreSQL; SQLite always holds a single
// connection.
type DatabaseConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path     string `koanf:"path" validate:"required_if=Driver sqlite"`
	Host     string `koanf:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" validate:"required_if=Driver postgres"`
	User     string `koanf:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `koanf:"ssl_mode" validate:"required_if=Driver postgres"`

	MaxOpenConns    int `koanf:"max_open_conns" validate:"min=0,max=1000"`
	MaxIdleConns    int `koanf:"max_idle_conns" validate:"min=0,max=1000"`
	ConnMaxLifetime int `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int `koanf:"conn_max_idle_time" validate:"min=0"`

	// Seed inserts the demonstration data when it is missing.
	Seed bool `koanf:"seed"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Path:            "classroom.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
			Seed:            true,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// listKeys are the koanf keys whose env value is a comma-separated list.
var listKeys = map[string]bool{
	"observability.health_checks.checks": true,
}

// envKey maps CLASSROOM_DATABASE__SSL_MODE to database.ssl_mode.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue maps an env variable to its koanf key and value, splitting list keys.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := make([]string, 0, strings.Count(value, ",")+1)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from environment variables, unmarshals it
// over DefaultConfig, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix CLASSROOM_
//   - Converts env keys into koanf keys using "." nesting
//   - Splits comma-separated values of list keys
//   - Unmarshals over the defaults, so unset keys keep their default
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Validates observability config as well
//
// Every failure is returned as an errs.KindConfig error.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, errs.NewConfigError("could not load env variables", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal using "" means "unmarshal everything from the root".
	// Fields absent from koanf keep the values already in mainConfig.
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		return nil, errs.NewConfigError("could not unmarshal config", err)
	}

	err = validation.Struct(mainConfig)
	if err != nil {
		return nil, errs.NewConfigError("config validation failed", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment follows primary.env so every log
	// line and APM transaction is tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errs.NewConfigError("invalid observability config", err)
	}

	return mainConfig, nil
}
