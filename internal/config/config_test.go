package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_DSN", "postgres://localhost/users")
	t.Setenv("AUTH_JWT_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	t.Run("missing DSN is fatal", func(t *testing.T) {
		t.Setenv("POSTGRES_DSN", "")
		t.Setenv("AUTH_JWT_SECRET", "secret")

		_, err := Load()
		require.ErrorContains(t, err, "POSTGRES_DSN")
	})

	t.Run("missing JWT secret is fatal", func(t *testing.T) {
		t.Setenv("POSTGRES_DSN", "postgres://localhost/users")
		t.Setenv("AUTH_JWT_SECRET", "")

		_, err := Load()
		require.ErrorContains(t, err, "AUTH_JWT_SECRET")
	})

	t.Run("applies defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "user-service", cfg.App.Name)
		require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
		require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
		require.Equal(t, 12, cfg.Auth.BcryptCost)
		require.Equal(t, 10, cfg.Auth.SignInMaxAttempts)
		require.Equal(t, 15*time.Minute, cfg.Auth.SignInWindow())
		require.True(t, cfg.Postgres.RunMigrations)
		require.False(t, cfg.Redis.Enabled())
	})

	t.Run("reads overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_PORT", "9999")
		t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
		t.Setenv("AUTH_SIGNIN_MAX_ATTEMPTS", "3")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
		require.True(t, cfg.Redis.Enabled())
		require.Equal(t, 3, cfg.Auth.SignInMaxAttempts)
	})

	t.Run("invalid REDIS_DB fails", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := Load()
		require.ErrorContains(t, err, "REDIS_DB")
	})
}
