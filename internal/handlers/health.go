package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RootText is the plain answer of GET /, used by hosting platforms as a liveness probe
const RootText = "OK - Bot running"

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandlers reports process and dependency status
type HealthHandlers struct {
	logger       *logging.SafeLogger
	storeBackend string
	transport    string
	checks       map[string]HealthCheck
}

// NewHealthHandlers creates health handlers. checks maps a dependency name to its ping.
func NewHealthHandlers(logger *logging.SafeLogger, storeBackend, transport string, checks map[string]HealthCheck) *HealthHandlers {
	return &HealthHandlers{
		logger:       logger,
		storeBackend: storeBackend,
		transport:    transport,
		checks:       checks,
	}
}

// Root godoc
// @Summary Verificação de vida
// @Description Resposta em texto simples usada pela plataforma de hospedagem para saber se o bot está no ar
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK - Bot running"
// @Router / [get]
func (h *HealthHandlers) Root(c *gin.Context) {
	c.String(http.StatusOK, RootText)
}

// Health godoc
// @Summary Verificar saúde do serviço
// @Description Informa o armazenamento e o transporte configurados e testa cada dependência (MongoDB, Redis)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Todas as dependências respondem"
// @Failure 503 {object} HealthResponse "Alguma dependência não respondeu"
// @Router /v1/health [get]
func (h *HealthHandlers) Health(c *gin.Context) {
	ctx, span := observability.Tracer().Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		StoreBackend: h.storeBackend,
		Transport:    h.transport,
		Services:     make(map[string]string, len(h.checks)),
	}

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
			continue
		}
		health.Services[name] = "healthy"
	}

	span.SetAttributes(attribute.String("health.status", health.Status))

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}
