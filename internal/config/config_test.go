package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quayside/entraportal/internal/config"
	apperrors "github.com/quayside/entraportal/internal/errors"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AZURE_CLIENT_ID", "client-123")
	t.Setenv("AZURE_CLIENT_SECRET", "secret-456")
	t.Setenv("AZURE_TENANT_ID", "tenant-789")
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		c, err := config.New()
		require.NoError(t, err)

		require.Equal(t, ":8080", c.GetPort())
		require.Equal(t, "Entra Portal", c.GetAppName())
		require.Equal(t, "DEV", c.GetEnv())
		require.Equal(t, "http://localhost:8080", c.GetBaseURL())
		require.Equal(t, 8*time.Hour, c.GetSessionTTL())
		require.Empty(t, c.GetDatabasePath())
	})

	t.Run("issuer derived from tenant", func(t *testing.T) {
		setRequiredEnv(t)

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "https://login.microsoftonline.com/tenant-789/v2.0", c.GetIssuerURL())
		require.Equal(t, "client-123", c.GetClientID())
		require.Equal(t, "secret-456", c.GetClientSecret())
		require.Equal(t, []byte("0123456789abcdef"), c.GetSessionSecret())
	})

	t.Run("missing required variables", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AZURE_CLIENT_SECRET", "")
		t.Setenv("SESSION_SECRET", "")

		_, err := config.New()
		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrMissingConfig)
		require.Contains(t, err.Error(), "AZURE_CLIENT_SECRET")
		require.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("port normalisation and base url trimming", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PORT", ":9000")
		t.Setenv("BASE_URL", "https://portal.example.com/")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, ":9000", c.GetPort())
		require.Equal(t, "https://portal.example.com", c.GetBaseURL())
	})

	t.Run("allowed origins", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

		c, err := config.New()
		require.NoError(t, err)
		origins := c.GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("https://a.example.com"))
		require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
		require.False(t, origins.IsAllowedOrigin("https://evil.example.com"))
	})
}
