package config

import "time"

type Config interface {
	EnvConfig
	OIDCConfig
	SessionConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetDatabasePath() string
}

// OIDCConfig exposes the Entra ID application registration values
// consumed by the relying-party setup.
type OIDCConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetTenantID() string
	GetIssuerURL() string
}

type SessionConfig interface {
	GetSessionSecret() []byte
	GetSessionTTL() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}
