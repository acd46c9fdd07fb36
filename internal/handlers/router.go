package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/bot-massagistas/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds the handlers mounted on the HTTP server.
// Webhook is nil in polling mode.
type RouterConfig struct {
	WebhookPath string
	AdminAPIKey string
	Webhook     *WebhookHandlers
	Health      *HealthHandlers
	Export      *ExportHandlers
}

// NewRouter builds the HTTP server routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/", cfg.Health.Root)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Webhook != nil {
		router.POST(cfg.WebhookPath, cfg.Webhook.ReceiveUpdate)
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/health", cfg.Health.Health)
		v1.GET("/directory/export.xlsx", middleware.RequireAPIKey(cfg.AdminAPIKey), cfg.Export.ExportXLSX)
	}

	return router
}
