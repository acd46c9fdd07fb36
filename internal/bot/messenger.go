package bot

//go:generate mockgen -source=messenger.go -destination=mocks/messenger_mock.go -package=mocks

import (
	"context"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
)

// Messenger delivers replies to a chat
type Messenger interface {
	Reply(ctx context.Context, chatID int64, text string, mode models.ParseMode) error
}
