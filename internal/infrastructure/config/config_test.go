package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"GLAM_APP_NAME",
	"GLAM_APP_ENV",
	"GLAM_APP_PORT",
	"GLAM_DATABASE_HOST",
	"GLAM_DATABASE_PORT",
	"GLAM_DATABASE_PASSWORD",
	"GLAM_DATABASE_SSLMODE",
	"GLAM_DATABASE_MAX_OPEN_CONNS",
	"GLAM_DATABASE_MAX_IDLE_CONNS",
	"GLAM_SESSION_SECRET",
	"GLAM_STRIPE_WEBHOOK_SECRET",
	"GLAM_TENANCY_PRIMARY_DOMAIN",
	"GLAM_TENANCY_ALLOW_LOCALHOST",
	"GLAM_REDIS_HOST",
	"GLAM_STORAGE_ENABLED",
	"GLAM_STORAGE_BUCKET",
	"GLAM_TELEMETRY_PROFILING_ENABLED",
	"GLAM_TELEMETRY_PROFILING_ADDRESS",
	"GLAM_SWAGGER_ENABLED",
	"GLAM_SWAGGER_REQUIRE_AUTH",
	"GLAM_SWAGGER_ALLOWED_IPS",
}

func withCleanEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(managedEnv))
	for _, k := range managedEnv {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		withCleanEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "glambooking-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "glambooking", cfg.Database.DBName)
		assert.Equal(t, "glambooking.co.uk", cfg.Tenancy.PrimaryDomain)
		assert.Equal(t, 5*time.Minute, cfg.Tenancy.CacheTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.Tenancy.InvitationTTL)
		assert.Equal(t, "session", cfg.Session.CookieName)
		assert.False(t, cfg.Redis.Enabled())
		assert.True(t, cfg.Tenancy.AllowLocalhost, "development serves <label>.localhost")
		assert.True(t, cfg.Swagger.Enabled)
		assert.False(t, cfg.Telemetry.ProfilingEnabled)
	})

	t.Run("explicit settings override development defaults", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_TENANCY_ALLOW_LOCALHOST", "false")
		os.Setenv("GLAM_SWAGGER_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Tenancy.AllowLocalhost)
		assert.False(t, cfg.Swagger.Enabled)
	})

	t.Run("other environments keep localhost subdomains off", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_APP_ENV", "staging")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Tenancy.AllowLocalhost)
		assert.False(t, cfg.Swagger.Enabled)
	})

	t.Run("profiling needs a server address", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		assert.ErrorContains(t, err, "profiling_address")

		os.Setenv("GLAM_TELEMETRY_PROFILING_ADDRESS", "http://pyroscope:4040")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Telemetry.ProfilingEnabled)
		assert.Equal(t, "http://pyroscope:4040", cfg.Telemetry.ProfilingAddress)
	})

	t.Run("loads values from environment variables with GLAM prefix", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_APP_PORT", "9000")
		os.Setenv("GLAM_DATABASE_HOST", "db.internal")
		os.Setenv("GLAM_DATABASE_PORT", "5433")
		os.Setenv("GLAM_TENANCY_PRIMARY_DOMAIN", "example.test")
		os.Setenv("GLAM_REDIS_HOST", "cache.internal")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "example.test", cfg.Tenancy.PrimaryDomain)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	})

	t.Run("rejects idle connections above open connections", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_DATABASE_MAX_OPEN_CONNS", "5")
		os.Setenv("GLAM_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("requires bucket when storage enabled", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("GLAM_STORAGE_ENABLED", "true")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_Production(t *testing.T) {
	setProd := func() {
		os.Setenv("GLAM_APP_ENV", "production")
		os.Setenv("GLAM_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("GLAM_DATABASE_PASSWORD", "s3cret")
		os.Setenv("GLAM_DATABASE_SSLMODE", "require")
		os.Setenv("GLAM_STRIPE_WEBHOOK_SECRET", "whsec_test")
	}

	t.Run("accepts complete production config", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("rejects short session secret", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		os.Setenv("GLAM_SESSION_SECRET", "short")
		_, err := Load()
		assert.ErrorContains(t, err, "session.secret")
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		os.Setenv("GLAM_DATABASE_SSLMODE", "disable")
		_, err := Load()
		assert.ErrorContains(t, err, "sslmode")
	})

	t.Run("rejects missing webhook secret", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		os.Unsetenv("GLAM_STRIPE_WEBHOOK_SECRET")
		_, err := Load()
		assert.ErrorContains(t, err, "webhook_secret")
	})

	t.Run("rejects localhost subdomains", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		os.Setenv("GLAM_TENANCY_ALLOW_LOCALHOST", "true")
		_, err := Load()
		assert.ErrorContains(t, err, "allow_localhost")
	})

	t.Run("rejects unprotected swagger", func(t *testing.T) {
		withCleanEnv(t)
		setProd()
		os.Setenv("GLAM_SWAGGER_ENABLED", "true")
		_, err := Load()
		assert.ErrorContains(t, err, "swagger")

		os.Setenv("GLAM_SWAGGER_REQUIRE_AUTH", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.RequireAuth)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "glam", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/glam?sslmode=require", d.DSN())
}
