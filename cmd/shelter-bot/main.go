// shelter-bot runs the staff-facing Telegram bot. It logs in with a service
// account, keeps the session alive through the API client's token refresh,
// and serves the Telegram webhook plus an optional task reminder poller.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shelterhub/config"
	"shelterhub/internal/bot"
	"shelterhub/internal/credstore"
	"shelterhub/internal/format"
	"shelterhub/internal/logging"
	"shelterhub/internal/session"
	"shelterhub/internal/shelterapi"
)

const defaultConfigPath = "bot-config.json"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	logFormat := flag.String("log-format", "json", "Log format (json or text)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.Options{
		Format: *logFormat,
		Level:  logging.ParseLevel(*logLevel),
	})

	logger.Info("Starting shelter Telegram bot",
		"config", *configPath,
	)

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadBotConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Timezone != "" {
		if err := format.SetTimezone(cfg.Timezone); err != nil {
			logger.Error("Failed to set timezone", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"webhook_url", cfg.Telegram.WebhookURL,
		"api_url", cfg.API.BaseURL,
		"allowed_users", len(cfg.Telegram.AllowedUsers),
	)

	creds, err := credstore.Open(cfg.API.CredentialsBackend, cfg.API.CredentialsPath, cfg.API.RedisAddr)
	if err != nil {
		logger.Error("Failed to open credential store", "error", err)
		os.Exit(1)
	}

	var opts []shelterapi.Option
	if cfg.API.TimeoutSeconds > 0 {
		opts = append(opts, shelterapi.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))
	}
	client := shelterapi.New(cfg.API.BaseURL, creds, logger, opts...)
	sess := session.New(client, creds, logger)

	ctx := context.Background()

	// Restore the persisted session first; fall back to a fresh login with
	// the service account.
	if err := sess.Restore(ctx); err != nil {
		logger.Info("No restorable session, logging in", "error", err)
		if err := sess.Login(ctx, cfg.Account.Email, cfg.Account.Password); err != nil {
			logger.Error("Failed to log in", "error", err)
			os.Exit(1)
		}
	}

	if cfg.API.OrganizationID != "" {
		if err := sess.SelectOrganization(ctx, cfg.API.OrganizationID); err != nil {
			logger.Error("Failed to select organization",
				"organization_id", cfg.API.OrganizationID,
				"error", err,
			)
			os.Exit(1)
		}
	}

	telegramBot, err := bot.NewBot(cfg, client, sess, logger)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := telegramBot.SetWebhook(); err != nil {
		logger.Error("Failed to set webhook", "error", err)
		os.Exit(1)
	}

	var reminder *bot.Reminder
	if cfg.Reminders.Enabled {
		reminder = bot.NewReminder(
			client,
			telegramBot,
			cfg.Reminders.ChatID,
			time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
			time.Duration(cfg.Reminders.DueWithinMinutes)*time.Minute,
			logger,
		)
		go reminder.Start()
	}

	router := bot.NewRouter(bot.RouterConfig{
		Bot:           telegramBot,
		WebhookSecret: cfg.Telegram.WebhookSecret,
		Logger:        logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Starting HTTP server", "addr", addr)
		if err := router.Run(addr); err != nil {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down bot...")
	if reminder != nil {
		reminder.Stop()
	}
	logger.Info("Bot stopped")
}
