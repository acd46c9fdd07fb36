package bot

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"

	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"github.com/prefeitura-rio/bot-massagistas/internal/services"
	"github.com/prefeitura-rio/bot-massagistas/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Outcome says what the dispatcher did with a message
type Outcome string

const (
	OutcomeHelp         Outcome = "help"
	OutcomeList         Outcome = "list"
	OutcomeListFailed   Outcome = "list_failed"
	OutcomeRegisterHelp Outcome = "register_help"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeInvalid      Outcome = "invalid"
	OutcomeStored       Outcome = "stored"
	OutcomeStoreFailed  Outcome = "store_failed"
	OutcomeWelcomed     Outcome = "welcomed"
	OutcomePanicked     Outcome = "panicked"
)

// DeliveryTracker reports whether an update is seen for the first time
type DeliveryTracker interface {
	FirstDelivery(ctx context.Context, updateID int) bool
}

// Dispatcher routes inbound messages to commands, registration or nothing.
// It keeps no per-message state and is safe for concurrent use.
type Dispatcher struct {
	messenger Messenger
	store     services.DirectoryStore
	parser    *services.SubmissionParser
	tracker   DeliveryTracker
	logger    *logging.SafeLogger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithParser replaces the default submission parser
func WithParser(parser *services.SubmissionParser) Option {
	return func(d *Dispatcher) { d.parser = parser }
}

// WithDeliveryTracker skips updates the tracker has already seen
func WithDeliveryTracker(tracker DeliveryTracker) Option {
	return func(d *Dispatcher) { d.tracker = tracker }
}

// NewDispatcher creates a dispatcher replying through messenger and storing in store
func NewDispatcher(messenger Messenger, store services.DirectoryStore, logger *logging.SafeLogger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		messenger: messenger,
		store:     store,
		parser:    services.NewSubmissionParser(),
		logger:    logger.Named("dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one inbound message. Failures are logged and answered in
// the chat; they never propagate to the caller.
func (d *Dispatcher) Handle(ctx context.Context, msg models.InboundMessage) (outcome Outcome) {
	logger := d.logger.With(
		zap.Int("update_id", msg.UpdateID),
		zap.Int64("chat_id", msg.ChatID),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling message",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			outcome = OutcomePanicked
		}
		observability.DispatchOutcomes.WithLabelValues(string(outcome)).Inc()
		logger.Debug("message handled", zap.String("outcome", string(outcome)))
	}()

	ctx, span := observability.Tracer().Start(ctx, "dispatcher.handle",
		trace.WithAttributes(
			attribute.Int("telegram.update_id", msg.UpdateID),
			attribute.Int64("telegram.chat_id", msg.ChatID),
		),
	)
	defer span.End()

	if d.tracker != nil && !d.tracker.FirstDelivery(ctx, msg.UpdateID) {
		return OutcomeDuplicate
	}

	if len(msg.NewChatMembers) > 0 {
		return d.welcome(ctx, logger, msg)
	}

	if msg.FromBot || strings.TrimSpace(msg.Text) == "" {
		return OutcomeIgnored
	}

	if msg.IsCommand {
		span.SetAttributes(attribute.String("telegram.command", msg.Command))
		switch msg.Command {
		case CommandHelp:
			d.reply(ctx, logger, msg.ChatID, HelpText, models.ParseModePlain)
			return OutcomeHelp
		case CommandList:
			return d.list(ctx, logger, msg)
		case CommandRegister:
			d.reply(ctx, logger, msg.ChatID, RegisterHelpText, models.ParseModePlain)
			return OutcomeRegisterHelp
		}
	}

	return d.ingest(ctx, logger, msg)
}

func (d *Dispatcher) welcome(ctx context.Context, logger *logging.SafeLogger, msg models.InboundMessage) Outcome {
	for _, member := range msg.NewChatMembers {
		d.reply(ctx, logger, msg.ChatID, WelcomeText(member.FirstName), models.ParseModeMarkdown)
	}
	logger.Info("welcomed new members", zap.Int("count", len(msg.NewChatMembers)))
	return OutcomeWelcomed
}

func (d *Dispatcher) list(ctx context.Context, logger *logging.SafeLogger, msg models.InboundMessage) Outcome {
	entries, err := d.store.ListEntries(ctx)
	if err != nil {
		logger.Error("failed to list directory", zap.Error(err))
		d.reply(ctx, logger, msg.ChatID, ListErrorText, models.ParseModePlain)
		return OutcomeListFailed
	}

	if len(entries) == 0 {
		d.reply(ctx, logger, msg.ChatID, services.DirectoryEmptyText, models.ParseModePlain)
		return OutcomeList
	}

	for _, text := range services.FormatDirectory(entries) {
		if !d.reply(ctx, logger, msg.ChatID, text, models.ParseModeMarkdown) {
			break
		}
	}
	return OutcomeList
}

func (d *Dispatcher) ingest(ctx context.Context, logger *logging.SafeLogger, msg models.InboundMessage) Outcome {
	submission, ok := d.parser.Parse(msg.Text)
	if !ok {
		return OutcomeIgnored
	}

	entry := submission.Entry
	logger = logger.With(
		zap.String("grammar", submission.Grammar),
		zap.String("contact_handle", entry.ContactHandle),
		zap.String("phone", observability.MaskPhone(entry.Phone)),
	)

	result := utils.ValidateDirectoryEntry(entry)
	if !result.IsValid {
		observability.Submissions.WithLabelValues(submission.Grammar, "invalid").Inc()
		logger.Info("rejected incomplete submission", zap.Strings("missing", result.Fields()))
		d.reply(ctx, logger, msg.ChatID, InvalidSubmissionText(result.Fields()), models.ParseModePlain)
		return OutcomeInvalid
	}

	if err := d.store.AppendEntry(ctx, entry); err != nil {
		observability.Submissions.WithLabelValues(submission.Grammar, "store_failed").Inc()
		logger.Error("failed to store submission",
			zap.Bool("rate_limited", errors.Is(err, models.ErrStoreRateLimited)),
			zap.Error(err))
		d.reply(ctx, logger, msg.ChatID, StoreErrorText, models.ParseModePlain)
		return OutcomeStoreFailed
	}

	observability.Submissions.WithLabelValues(submission.Grammar, "stored").Inc()
	logger.Info("directory entry registered")
	d.reply(ctx, logger, msg.ChatID, StoredText, models.ParseModePlain)
	return OutcomeStored
}

// reply sends text and reports whether it was delivered. Delivery failures are
// logged and counted only.
func (d *Dispatcher) reply(ctx context.Context, logger *logging.SafeLogger, chatID int64, text string, mode models.ParseMode) bool {
	if err := d.messenger.Reply(ctx, chatID, text, mode); err != nil {
		observability.ReplyFailures.Inc()
		logger.Warn("failed to deliver reply", zap.Error(err))
		return false
	}
	return true
}
