package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/bot"
	"github.com/prefeitura-rio/bot-massagistas/internal/config"
	"github.com/prefeitura-rio/bot-massagistas/internal/handlers"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"github.com/prefeitura-rio/bot-massagistas/internal/services"
	"github.com/prefeitura-rio/bot-massagistas/internal/utils/httpclient"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/prefeitura-rio/bot-massagistas/docs"
)

// @title           Bot Massagistas
// @version         1.0
// @description     Bot do Telegram para o grupo de troca de massagens. Recebe cadastros de massagistas, guarda o diretório numa planilha do Google Sheets (ou MongoDB) e expõe endpoints de saúde, métricas, webhook e exportação.

// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Bearer ADMIN_API_KEY

// @tag.name health
// @tag.description Verificações de saúde

// @tag.name telegram
// @tag.description Recebimento de atualizações do Telegram

// @tag.name directory
// @tag.description Diretório de massagistas

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	observability.InitTracer()
	defer observability.ShutdownTracer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.HealthCheck{}

	store, err := buildStore(cfg, checks)
	if err != nil {
		logging.Logger.Fatal("failed to initialize directory store", zap.Error(err))
	}

	// the client timeout must outlast the long poll held open by Telegram
	telegramClient := httpclient.New(time.Duration(bot.PollTimeoutSeconds+15) * time.Second)
	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, telegramClient)
	if err != nil {
		logging.Logger.Fatal("failed to connect to Telegram", zap.Error(err))
	}
	logging.Logger.Info("authorized on Telegram", zap.String("bot", api.Self.UserName))

	var opts []bot.Option
	if cfg.RedisEnabled {
		if err := config.InitRedis(); err != nil {
			logging.Logger.Warn("redis unavailable, update de-duplication disabled", zap.Error(err))
		} else {
			opts = append(opts, bot.WithDeliveryTracker(
				services.NewUpdateDeduplicator(config.Redis, cfg.UpdateDedupTTL, logging.Logger)))
			checks["redis"] = func(ctx context.Context) error { return config.Redis.Ping(ctx).Err() }
		}
	}

	dispatcher := bot.NewDispatcher(bot.NewTelegramMessenger(api, logging.Logger), store, logging.Logger, opts...)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := handlers.RouterConfig{
		WebhookPath: cfg.WebhookPath,
		AdminAPIKey: cfg.AdminAPIKey,
		Health:      handlers.NewHealthHandlers(logging.Logger, cfg.StoreBackend, cfg.TransportMode, checks),
		Export:      handlers.NewExportHandlers(logging.Logger, store),
	}
	if cfg.TransportMode == config.TransportWebhook {
		routerCfg.Webhook = handlers.NewWebhookHandlers(logging.Logger, dispatcher)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handlers.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	switch cfg.TransportMode {
	case config.TransportPolling:
		if err := bot.ClearWebhook(api); err != nil {
			logging.Logger.Warn("failed to clear webhook before polling", zap.Error(err))
		}
		poller := bot.NewPoller(api, dispatcher, logging.Logger)
		g.Go(func() error { return poller.Run(gctx) })
	case config.TransportWebhook:
		if url := cfg.WebhookURL(); url != "" {
			if err := bot.RegisterWebhook(api, url); err != nil {
				logging.Logger.Error("failed to register webhook", zap.Error(err))
			} else {
				logging.Logger.Info("webhook registered", zap.String("url", url))
			}
		} else {
			logging.Logger.Warn("RENDER_EXTERNAL_URL and BASE_URL are unset, skipping webhook registration")
		}
	}

	logging.Logger.Info("bot running",
		zap.String("transport", cfg.TransportMode),
		zap.String("store", cfg.StoreBackend))

	if err := g.Wait(); err != nil {
		logging.Logger.Error("bot stopped with error", zap.Error(err))
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	config.CloseConnections(closeCtx)

	logging.Logger.Info("bot exited gracefully")
}

// buildStore creates the configured directory store and registers its health check
func buildStore(cfg *config.Config, checks map[string]handlers.HealthCheck) (services.DirectoryStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMongo:
		if err := config.InitMongoDB(); err != nil {
			return nil, err
		}
		checks["mongodb"] = func(ctx context.Context) error { return config.MongoClient.Ping(ctx, nil) }
		return services.NewMongoStore(config.MongoDB, cfg.MongoDirectoryCollection, logging.Logger), nil
	default:
		// the token source outlives the signal context so in-flight handlers can still refresh it
		service, err := services.NewSheetsService(context.Background(), cfg.ServiceAccountEmail, cfg.ServiceAccountKey)
		if err != nil {
			return nil, err
		}
		limiter := services.NewPerMinuteRateLimiter(cfg.StoreRateLimitPerMinute, logging.Logger)
		return services.NewSheetsStore(service, cfg.SheetsID, cfg.SheetsTabName, limiter, logging.Logger), nil
	}
}
