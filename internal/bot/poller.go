package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/config"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"go.uber.org/zap"
)

// PollTimeoutSeconds is the long polling timeout sent to getUpdates
const PollTimeoutSeconds = 60

// MessageHandler handles one inbound message
type MessageHandler interface {
	Handle(ctx context.Context, msg models.InboundMessage) Outcome
}

// UpdateSource is the long polling side of the Bot API client
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller receives updates by long polling and hands each one to its own goroutine
type Poller struct {
	source  UpdateSource
	handler MessageHandler
	logger  *logging.SafeLogger
	wg      sync.WaitGroup
}

// NewPoller creates a poller
func NewPoller(source UpdateSource, handler MessageHandler, logger *logging.SafeLogger) *Poller {
	return &Poller{
		source:  source,
		handler: handler,
		logger:  logger.Named("poller"),
	}
}

// Run polls until ctx is cancelled or the update channel closes, then waits
// for in-flight handlers to finish.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = PollTimeoutSeconds
	updates := p.source.GetUpdatesChan(cfg)

	p.logger.Info("long polling started", zap.Int("timeout_seconds", PollTimeoutSeconds))
	defer p.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			p.source.StopReceivingUpdates()
			p.logger.Info("long polling stopped, waiting for in-flight updates")
			return nil
		case update, ok := <-updates:
			if !ok {
				p.logger.Info("update channel closed")
				return nil
			}
			p.dispatch(ctx, update)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	observability.UpdatesReceived.WithLabelValues(config.TransportPolling, UpdateKind(update)).Inc()

	msg, ok := FromTelegramUpdate(update)
	if !ok {
		return
	}

	// handlers outlive the polling loop so a shutdown does not cut a reply short
	handlerCtx := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.handler.Handle(handlerCtx, msg)
	}()
}
