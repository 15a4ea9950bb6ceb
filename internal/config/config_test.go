package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UNION_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Union Portal API", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, 168*time.Hour, cfg.UserTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.AdminTokenTTL)
	require.Equal(t, 5*time.Minute, cfg.NewsCacheTTL)
	require.Equal(t, "*", cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UNION_JWT_SECRET", "test-secret")
	t.Setenv("UNION_APP_PORT", "9090")
	t.Setenv("UNION_TOKEN_USER_TTL", "12h")
	t.Setenv("UNION_DATABASE_URL", "postgres://localhost/union")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, 12*time.Hour, cfg.UserTokenTTL)
	require.Equal(t, "postgres://localhost/union", cfg.DatabaseURL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("UNION_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
}
