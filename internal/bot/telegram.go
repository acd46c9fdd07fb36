package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"go.uber.org/zap"
)

// Requester is the part of the Bot API client used to send raw requests
type Requester interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// TelegramMessenger sends replies through the Telegram Bot API
type TelegramMessenger struct {
	api    Requester
	logger *logging.SafeLogger
}

// NewTelegramMessenger creates a messenger backed by the given Bot API client
func NewTelegramMessenger(api Requester, logger *logging.SafeLogger) *TelegramMessenger {
	return &TelegramMessenger{api: api, logger: logger.Named("messenger")}
}

// Reply sends a text message to the chat
func (m *TelegramMessenger) Reply(ctx context.Context, chatID int64, text string, mode models.ParseMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = string(mode)

	if _, err := m.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	m.logger.Debug("reply sent", zap.Int64("chat_id", chatID), zap.Int("length", len(text)))
	return nil
}

// RegisterWebhook points Telegram at the public webhook URL
func RegisterWebhook(api Requester, url string) error {
	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := api.Request(webhook); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// ClearWebhook removes any registered webhook so that long polling is allowed
func ClearWebhook(api Requester) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

// UpdateKind classifies an update for metrics
func UpdateKind(update tgbotapi.Update) string {
	switch {
	case update.Message == nil:
		return "other"
	case len(update.Message.NewChatMembers) > 0:
		return "new_members"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}

// FromTelegramUpdate converts a Telegram update into an inbound message.
// It reports false for updates that carry no message.
func FromTelegramUpdate(update tgbotapi.Update) (models.InboundMessage, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return models.InboundMessage{}, false
	}

	inbound := models.InboundMessage{
		UpdateID:  update.UpdateID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
	if msg.From != nil {
		inbound.SenderID = msg.From.ID
		inbound.FromBot = msg.From.IsBot
	}
	if msg.IsCommand() {
		inbound.IsCommand = true
		inbound.Command = msg.Command()
	}
	for _, member := range msg.NewChatMembers {
		inbound.NewChatMembers = append(inbound.NewChatMembers, models.ChatMember{
			ID:        member.ID,
			FirstName: member.FirstName,
			Username:  member.UserName,
			IsBot:     member.IsBot,
		})
	}
	return inbound, true
}
