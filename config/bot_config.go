package config

import "fmt"

// BotConfig represents the Telegram bot configuration.
type BotConfig struct {
	Server    BotServerConfig   `json:"server"`
	Telegram  TelegramBotConfig `json:"telegram"`
	API       APIConfig         `json:"api"`
	Account   BotAccountConfig  `json:"account"`
	Reminders RemindersConfig   `json:"reminders"`
	Timezone  string            `json:"timezone,omitempty"`
}

// BotServerConfig contains HTTP server settings for the webhook listener.
type BotServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// TelegramBotConfig contains Telegram bot settings.
type TelegramBotConfig struct {
	Token         string  `json:"token"`
	AllowedUsers  []int64 `json:"allowed_users"`
	WebhookURL    string  `json:"webhook_url"`
	WebhookSecret string  `json:"webhook_secret"`
}

// BotAccountConfig contains the service-account credentials the bot logs in
// with. Token refresh after login is handled by the API client.
type BotAccountConfig struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RemindersConfig controls the feeding/task reminder poller.
type RemindersConfig struct {
	Enabled          bool  `json:"enabled"`
	ChatID           int64 `json:"chat_id,omitempty"`
	IntervalMinutes  int   `json:"interval_minutes,omitempty"`
	DueWithinMinutes int   `json:"due_within_minutes,omitempty"`
}

// LoadBotConfig loads bot configuration from a file.
func LoadBotConfig(path string) (*BotConfig, error) {
	var cfg BotConfig
	if err := loadJSON(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *BotConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid server port", ErrInvalidConfig)
	}

	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram.token is required", ErrInvalidConfig)
	}

	if len(c.Telegram.AllowedUsers) == 0 {
		return fmt.Errorf("%w: telegram.allowed_users cannot be empty", ErrInvalidConfig)
	}

	if c.Telegram.WebhookURL == "" {
		return fmt.Errorf("%w: telegram.webhook_url is required", ErrInvalidConfig)
	}

	if err := c.API.Validate(); err != nil {
		return err
	}

	if c.Account.Email == "" || c.Account.Password == "" {
		return fmt.Errorf("%w: account.email and account.password are required", ErrInvalidConfig)
	}

	if c.Reminders.Enabled && c.Reminders.ChatID == 0 {
		return fmt.Errorf("%w: reminders.chat_id is required when reminders are enabled", ErrInvalidConfig)
	}

	// Defaults
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Reminders.IntervalMinutes <= 0 {
		c.Reminders.IntervalMinutes = 15
	}
	if c.Reminders.DueWithinMinutes <= 0 {
		c.Reminders.DueWithinMinutes = 60
	}

	return nil
}

// IsUserAllowed checks if a user ID is in the whitelist.
func (c *BotConfig) IsUserAllowed(userID int64) bool {
	for _, allowedID := range c.Telegram.AllowedUsers {
		if allowedID == userID {
			return true
		}
	}
	return false
}
