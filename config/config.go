package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// APIConfig describes how a client connects to the shelter backend. It is
// shared by the bot and CLI configurations.
type APIConfig struct {
	BaseURL string `json:"base_url"`
	// CredentialsPath is where the token pair is persisted between runs.
	CredentialsPath string `json:"credentials_path"`
	// CredentialsBackend selects the store: "file" (default), "sqlite",
	// "redis" or "memory".
	CredentialsBackend string `json:"credentials_backend,omitempty"`
	RedisAddr          string `json:"redis_addr,omitempty"`
	OrganizationID     string `json:"organization_id,omitempty"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty"`
}

// Validate validates the API connection settings.
func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}

	switch c.CredentialsBackend {
	case "", "file", "sqlite", "memory":
		if c.CredentialsBackend != "memory" && c.CredentialsPath == "" {
			return fmt.Errorf("%w: api.credentials_path is required", ErrInvalidConfig)
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: api.redis_addr is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown credentials backend %q", ErrInvalidConfig, c.CredentialsBackend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		fmt.Sscanf(value, "%d", &intVal)
		return intVal
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func loadJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}
