package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/quayside/entraportal/internal/errors"
)

// envVars holds every environment variable the portal reads. The Azure
// values come from the app registration in the Entra admin centre.
type envVars struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Entra Portal"`
	Env     string `env:"ENV" envDefault:"DEV"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	AzureClientID     string `env:"AZURE_CLIENT_ID"`
	AzureClientSecret string `env:"AZURE_CLIENT_SECRET"`
	AzureTenantID     string `env:"AZURE_TENANT_ID"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// Optional sqlite path. Sessions live in memory when unset.
	DatabasePath string `env:"DATABASE_PATH"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

type mainConfig struct {
	vars envVars
}

var _ Config = mainConfig{}

// New parses configuration from the environment and validates the
// values the sign-in flow cannot run without.
func New() (Config, error) {
	var vars envVars
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}

	c := mainConfig{vars: vars}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	var missing []string
	if c.vars.AzureClientID == "" {
		missing = append(missing, "AZURE_CLIENT_ID")
	}
	if c.vars.AzureClientSecret == "" {
		missing = append(missing, "AZURE_CLIENT_SECRET")
	}
	if c.vars.AzureTenantID == "" {
		missing = append(missing, "AZURE_TENANT_ID")
	}
	if c.vars.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return apperrors.Wrapf(apperrors.ErrMissingConfig, "%s", strings.Join(missing, ", "))
	}
	return nil
}

func (c mainConfig) GetPort() string {
	port := c.vars.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (c mainConfig) GetAppName() string { return c.vars.AppName }

func (c mainConfig) GetEnv() string { return c.vars.Env }

func (c mainConfig) GetBaseURL() string {
	return strings.TrimSuffix(c.vars.BaseURL, "/")
}

func (c mainConfig) GetDatabasePath() string { return c.vars.DatabasePath }

func (c mainConfig) GetClientID() string { return c.vars.AzureClientID }

func (c mainConfig) GetClientSecret() string { return c.vars.AzureClientSecret }

func (c mainConfig) GetTenantID() string { return c.vars.AzureTenantID }

// GetIssuerURL returns the Entra ID v2.0 issuer for the configured
// tenant, the discovery root for the OIDC provider.
func (c mainConfig) GetIssuerURL() string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", c.vars.AzureTenantID)
}

func (c mainConfig) GetSessionSecret() []byte { return []byte(c.vars.SessionSecret) }

func (c mainConfig) GetSessionTTL() time.Duration { return c.vars.SessionTTL }
