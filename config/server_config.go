package config

import "fmt"

// ServerConfig represents the development stub server configuration.
type ServerConfig struct {
	Server HTTPServerConfig `json:"server"`
	Auth   AuthConfig       `json:"auth"`
}

// HTTPServerConfig contains HTTP listener settings.
type HTTPServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// AuthConfig contains token issuing settings for the stub server.
type AuthConfig struct {
	JWTSecret       string `json:"jwt_secret"`
	AccessTTLSecs   int    `json:"access_ttl_seconds,omitempty"`
	RefreshTTLHours int    `json:"refresh_ttl_hours,omitempty"`
}

// LoadServerConfig loads the stub server configuration from a file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := loadJSON(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadServerConfigFromEnv loads the stub server configuration from
// environment variables. This is useful for containerized runs.
func LoadServerConfigFromEnv() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Server: HTTPServerConfig{
			Host: getEnv("SHELTERHUB_HOST", "0.0.0.0"),
			Port: getEnvInt("SHELTERHUB_PORT", 8080),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("SHELTERHUB_JWT_SECRET", ""),
			AccessTTLSecs:   getEnvInt("SHELTERHUB_ACCESS_TTL_SECONDS", 0),
			RefreshTTLHours: getEnvInt("SHELTERHUB_REFRESH_TTL_HOURS", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and applies defaults.
func (c *ServerConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid server port", ErrInvalidConfig)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Auth.AccessTTLSecs <= 0 {
		c.Auth.AccessTTLSecs = 900
	}
	if c.Auth.RefreshTTLHours <= 0 {
		c.Auth.RefreshTTLHours = 24 * 7
	}

	return nil
}
