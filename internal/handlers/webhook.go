package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/bot"
	"github.com/prefeitura-rio/bot-massagistas/internal/config"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"go.uber.org/zap"
)

// WebhookHandlers receives updates pushed by Telegram
type WebhookHandlers struct {
	logger  *logging.SafeLogger
	handler bot.MessageHandler
}

// NewWebhookHandlers creates webhook handlers dispatching to handler
func NewWebhookHandlers(logger *logging.SafeLogger, handler bot.MessageHandler) *WebhookHandlers {
	return &WebhookHandlers{logger: logger.Named("webhook"), handler: handler}
}

// ReceiveUpdate handles one update. Telegram retries on non-2xx answers, so
// anything that decodes is acknowledged with 200 regardless of the outcome.
// @Summary Receber atualização do Telegram
// @Description Endpoint registrado como webhook do bot (caminho definido por WEBHOOK_PATH). Só é montado no modo webhook.
// @Tags telegram
// @Accept json
// @Param update body object true "Update da Bot API do Telegram"
// @Success 200 "Atualização recebida"
// @Failure 400 {object} ErrorResponse "Payload inválido"
// @Router /telegram-webhook [post]
func (h *WebhookHandlers) ReceiveUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid update payload"})
		return
	}

	observability.UpdatesReceived.WithLabelValues(config.TransportWebhook, bot.UpdateKind(update)).Inc()

	if msg, ok := bot.FromTelegramUpdate(update); ok {
		// Handling outlives a dropped connection.
		outcome := h.handler.Handle(context.WithoutCancel(c.Request.Context()), msg)
		h.logger.Debug("update processed",
			zap.Int("update_id", update.UpdateID),
			zap.String("outcome", string(outcome)))
	}

	c.Status(http.StatusOK)
}
