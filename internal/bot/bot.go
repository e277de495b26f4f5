// Package bot implements the staff-facing Telegram bot. It is a thin
// conversational front end over the shelter API: commands list animals,
// tasks, feeding plans and hotel reservations, and inline buttons drive
// the short flows (completing a task, checking a hotel guest in or out).
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shelterhub/config"
	"shelterhub/internal/session"
	"shelterhub/internal/shelterapi"
)

// Bot represents the Telegram bot.
type Bot struct {
	api     *tgbotapi.BotAPI
	client  *shelterapi.Client
	session *session.Session
	config  *config.BotConfig
	logger  *slog.Logger
}

// NewBot creates a new Telegram bot instance on top of an authenticated
// API client and session.
func NewBot(cfg *config.BotConfig, client *shelterapi.Client, sess *session.Session, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	return &Bot{
		api:     api,
		client:  client,
		session: sess,
		config:  cfg,
		logger:  logger.With("component", "bot"),
	}, nil
}

// SetWebhook configures the webhook for the bot.
func (b *Bot) SetWebhook() error {
	webhookConfig, _ := tgbotapi.NewWebhook(b.config.Telegram.WebhookURL)

	_, err := b.api.Request(webhookConfig)
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("failed to get webhook info: %w", err)
	}

	b.logger.Info("Webhook configured",
		"url", info.URL,
		"pending_updates", info.PendingUpdateCount,
	)

	return nil
}

// HandleUpdate processes a Telegram update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) error {
	ctx := context.Background()

	var userID int64
	if update.Message != nil {
		userID = update.Message.From.ID
	} else if update.CallbackQuery != nil {
		userID = update.CallbackQuery.From.ID
	} else {
		// Ignore updates without user info.
		return nil
	}

	if !b.config.IsUserAllowed(userID) {
		b.logger.Warn("Unauthorized access attempt",
			"user_id", userID,
		)
		return b.sendUnauthorizedMessage(update)
	}

	if update.Message != nil {
		return b.handleMessage(ctx, update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(ctx, update.CallbackQuery)
	}

	return nil
}

// handleMessage processes incoming messages.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	b.logger.Info("Received message",
		"user_id", message.From.ID,
		"username", message.From.UserName,
		"text", message.Text,
	)

	if !message.IsCommand() {
		return nil
	}

	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "animals":
		return b.handleAnimals(ctx, message)
	case "tasks":
		return b.handleTasks(ctx, message)
	case "feeding":
		return b.handleFeeding(ctx, message)
	case "hotel":
		return b.handleHotel(ctx, message)
	case "kennels":
		return b.handleKennels(ctx, message)
	default:
		return b.sendMessage(message.Chat.ID,
			"Unknown command. Use /start to see available commands.", nil)
	}
}

// handleCallback processes callback queries from inline buttons.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	b.logger.Info("Received callback",
		"user_id", callback.From.ID,
		"data", callback.Data,
	)

	// Answer callback to remove loading state.
	answer := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(answer); err != nil {
		b.logger.Error("Failed to answer callback", "error", err)
	}

	// Callback data starting with / is a plain command shortcut.
	if len(callback.Data) > 0 && callback.Data[0] == '/' {
		msg := &tgbotapi.Message{
			Chat: callback.Message.Chat,
			From: callback.From,
			Text: callback.Data,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(callback.Data)},
			},
		}
		return b.handleMessage(ctx, msg)
	}

	data, err := UnmarshalCallback(callback.Data)
	if err != nil {
		b.logger.Error("Failed to unmarshal callback data",
			"raw_data", callback.Data,
			"error", err,
		)
		return b.sendMessage(callback.Message.Chat.ID, FormatError(err), nil)
	}

	switch data.Action {
	case "cancel":
		return b.handleCancel(ctx, callback.Message)
	case "task":
		return b.handleTaskAction(ctx, callback.Message, data)
	case "hotel":
		return b.handleHotelAction(ctx, callback.Message, data)
	case "animal":
		return b.handleAnimalAction(ctx, callback.Message, data)
	default:
		return b.sendMessage(callback.Message.Chat.ID,
			"Unknown action.", nil)
	}
}

// sendMessage sends a text message.
func (b *Bot) sendMessage(chatID int64, text string, keyboard interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	if keyboard != nil {
		switch kb := keyboard.(type) {
		case tgbotapi.InlineKeyboardMarkup:
			msg.ReplyMarkup = kb
		}
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			"chat_id", chatID,
			"error", err,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// editMessage edits an existing message.
func (b *Bot) editMessage(chatID int64, messageID int, text string, keyboard interface{}) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = "Markdown"

	if keyboard != nil {
		switch kb := keyboard.(type) {
		case tgbotapi.InlineKeyboardMarkup:
			msg.ReplyMarkup = &kb
		}
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to edit message",
			"chat_id", chatID,
			"message_id", messageID,
			"error", err,
		)
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// sendUnauthorizedMessage sends an unauthorized access message.
func (b *Bot) sendUnauthorizedMessage(update tgbotapi.Update) error {
	var chatID int64
	if update.Message != nil {
		chatID = update.Message.Chat.ID
	} else if update.CallbackQuery != nil {
		chatID = update.CallbackQuery.Message.Chat.ID
	} else {
		return nil
	}

	return b.sendMessage(chatID,
		"⛔ You are not authorized to use this bot.", nil)
}

// handleCancel handles the cancel action.
func (b *Bot) handleCancel(ctx context.Context, message *tgbotapi.Message) error {
	return b.editMessage(message.Chat.ID, message.MessageID,
		"❌ Cancelled.", BuildQuickActionsButtons())
}
