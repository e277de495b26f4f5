package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBotConfig() BotConfig {
	return BotConfig{
		Server: BotServerConfig{Host: "0.0.0.0", Port: 8090},
		Telegram: TelegramBotConfig{
			Token:        "test-token",
			AllowedUsers: []int64{42},
			WebhookURL:   "https://bot.example/telegram/webhook",
		},
		API: APIConfig{
			BaseURL:         "http://localhost:8080",
			CredentialsPath: "/var/lib/shelterhub/credentials.json",
		},
		Account: BotAccountConfig{
			Email:    "bot@shelter.example",
			Password: "secret",
		},
	}
}

func TestBotConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BotConfig)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *BotConfig) {},
			wantErr: false,
		},
		{
			name:    "invalid port - zero",
			mutate:  func(c *BotConfig) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too large",
			mutate:  func(c *BotConfig) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing telegram token",
			mutate:  func(c *BotConfig) { c.Telegram.Token = "" },
			wantErr: true,
		},
		{
			name:    "empty allowed users",
			mutate:  func(c *BotConfig) { c.Telegram.AllowedUsers = nil },
			wantErr: true,
		},
		{
			name:    "missing webhook URL",
			mutate:  func(c *BotConfig) { c.Telegram.WebhookURL = "" },
			wantErr: true,
		},
		{
			name:    "missing API base URL",
			mutate:  func(c *BotConfig) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "missing credentials path",
			mutate:  func(c *BotConfig) { c.API.CredentialsPath = "" },
			wantErr: true,
		},
		{
			name: "memory backend needs no credentials path",
			mutate: func(c *BotConfig) {
				c.API.CredentialsBackend = "memory"
				c.API.CredentialsPath = ""
			},
			wantErr: false,
		},
		{
			name: "redis backend needs an address",
			mutate: func(c *BotConfig) {
				c.API.CredentialsBackend = "redis"
				c.API.RedisAddr = ""
			},
			wantErr: true,
		},
		{
			name:    "unknown credentials backend",
			mutate:  func(c *BotConfig) { c.API.CredentialsBackend = "vault" },
			wantErr: true,
		},
		{
			name:    "missing account credentials",
			mutate:  func(c *BotConfig) { c.Account.Password = "" },
			wantErr: true,
		},
		{
			name: "reminders without chat id",
			mutate: func(c *BotConfig) {
				c.Reminders.Enabled = true
				c.Reminders.ChatID = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBotConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBotConfig_ValidateDefaults(t *testing.T) {
	cfg := validBotConfig()
	cfg.Server.Host = ""
	cfg.Reminders.Enabled = true
	cfg.Reminders.ChatID = 42

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15, cfg.Reminders.IntervalMinutes)
	assert.Equal(t, 60, cfg.Reminders.DueWithinMinutes)
}

func TestBotConfig_IsUserAllowed(t *testing.T) {
	cfg := validBotConfig()
	cfg.Telegram.AllowedUsers = []int64{1, 2, 3}

	assert.True(t, cfg.IsUserAllowed(2))
	assert.False(t, cfg.IsUserAllowed(4))
}

func TestLoadBotConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot-config.json")

	content := `{
		"server": {"host": "127.0.0.1", "port": 8090},
		"telegram": {
			"token": "test-token",
			"allowed_users": [42],
			"webhook_url": "https://bot.example/telegram/webhook",
			"webhook_secret": "hook-secret"
		},
		"api": {
			"base_url": "http://localhost:8080",
			"credentials_path": "/tmp/creds.json"
		},
		"account": {"email": "bot@shelter.example", "password": "secret"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadBotConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "hook-secret", cfg.Telegram.WebhookSecret)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
}

func TestLoadBotConfig_NotFound(t *testing.T) {
	_, err := LoadBotConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := ServerConfig{
		Server: HTTPServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "dev-secret"},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 900, cfg.Auth.AccessTTLSecs)
	assert.Equal(t, 24*7, cfg.Auth.RefreshTTLHours)

	cfg.Auth.JWTSecret = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoadCtlConfigFromEnv(t *testing.T) {
	t.Setenv("SHELTERHUB_API_URL", "http://api.example")
	t.Setenv("SHELTERHUB_CREDENTIALS_PATH", "/tmp/ctl-creds.json")
	t.Setenv("SHELTERHUB_ORG_ID", "org_9")

	cfg, err := LoadCtlConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example", cfg.BaseURL)
	assert.Equal(t, "/tmp/ctl-creds.json", cfg.CredentialsPath)
	assert.Equal(t, "org_9", cfg.OrganizationID)
}
