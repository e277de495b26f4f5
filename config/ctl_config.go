package config

import (
	"os"
	"path/filepath"
)

// LoadCtlConfigFromEnv builds the CLI's API configuration from environment
// variables, falling back to a credentials file under the user config dir.
func LoadCtlConfigFromEnv() (*APIConfig, error) {
	cfg := &APIConfig{
		BaseURL:            getEnv("SHELTERHUB_API_URL", "http://localhost:8080"),
		CredentialsPath:    getEnv("SHELTERHUB_CREDENTIALS_PATH", defaultCredentialsPath()),
		CredentialsBackend: getEnv("SHELTERHUB_CREDENTIALS_BACKEND", "file"),
		RedisAddr:          getEnv("SHELTERHUB_REDIS_ADDR", ""),
		OrganizationID:     getEnv("SHELTERHUB_ORG_ID", ""),
		TimeoutSeconds:     getEnvInt("SHELTERHUB_TIMEOUT_SECONDS", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shelterhub-credentials.json"
	}
	return filepath.Join(dir, "shelterhub", "credentials.json")
}
