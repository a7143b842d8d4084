package config

import (
	"testing"
	"time"

	"github.com/deppfellow/classroom/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "classroom.db", cfg.Database.Path)
	assert.True(t, cfg.Database.Seed)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CLASSROOM_PRIMARY__ENV", "production")
	t.Setenv("CLASSROOM_DATABASE__DRIVER", "postgres")
	t.Setenv("CLASSROOM_DATABASE__HOST", "db.internal")
	t.Setenv("CLASSROOM_DATABASE__PORT", "6543")
	t.Setenv("CLASSROOM_DATABASE__USER", "nss")
	t.Setenv("CLASSROOM_DATABASE__NAME", "classroom")
	t.Setenv("CLASSROOM_DATABASE__SSL_MODE", "require")
	t.Setenv("CLASSROOM_DATABASE__SEED", "false")
	t.Setenv("CLASSROOM_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("CLASSROOM_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "console", cfg.Observability.Logging.Format, "unset keys keep defaults")
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CLASSROOM_DATABASE__DRIVER", "oracle")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, &errs.Error{Kind: errs.KindConfig})
}

func TestLoadConfigPostgresRequiresHost(t *testing.T) {
	t.Setenv("CLASSROOM_DATABASE__DRIVER", "postgres")
	t.Setenv("CLASSROOM_DATABASE__USER", "nss")
	t.Setenv("CLASSROOM_DATABASE__NAME", "classroom")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host is required when Driver is postgres")
}

func TestLoadConfigHealthChecksList(t *testing.T) {
	t.Setenv("CLASSROOM_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database, schema")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"database", "schema"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoadConfigHealthChecksSingleValue(t *testing.T) {
	t.Setenv("CLASSROOM_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "schema")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"schema"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoadConfigRejectsUnknownHealthCheck(t *testing.T) {
	t.Setenv("CLASSROOM_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database,redis")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "observability.health_checks.checks[1] must be one of: database schema")
}

func TestLoadConfigRejectsHugePool(t *testing.T) {
	t.Setenv("CLASSROOM_DATABASE__MAX_OPEN_CONNS", "5000000000")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, &errs.Error{Kind: errs.KindConfig})
}

func TestLoadConfigRejectsBadLogLevel(t *testing.T) {
	t.Setenv("CLASSROOM_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("CLASSROOM_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("CLASSROOM_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestEnvValueSplitsListKeys(t *testing.T) {
	key, value := envValue("CLASSROOM_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database,,schema")
	assert.Equal(t, "observability.health_checks.checks", key)
	assert.Equal(t, []string{"database", "schema"}, value)

	key, value = envValue("CLASSROOM_DATABASE__PATH", "a,b.db")
	assert.Equal(t, "database.path", key)
	assert.Equal(t, "a,b.db", value)
}

func TestGetLogLevelDefaults(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())
}
