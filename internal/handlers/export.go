package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/services"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandlers serves directory downloads for administrators
type ExportHandlers struct {
	logger *logging.SafeLogger
	store  services.DirectoryStore
}

// NewExportHandlers creates export handlers reading from store
func NewExportHandlers(logger *logging.SafeLogger, store services.DirectoryStore) *ExportHandlers {
	return &ExportHandlers{logger: logger.Named("export"), store: store}
}

// ExportXLSX godoc
// @Summary Exportar diretório de massagistas
// @Description Baixa todos os cadastros como planilha .xlsx, na ordem de inserção (somente administradores)
// @Tags directory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file "Planilha com os cadastros"
// @Failure 401 {object} ErrorResponse "Cabeçalho Authorization ausente ou malformado"
// @Failure 403 {object} ErrorResponse "Chave de administração inválida"
// @Failure 404 {object} ErrorResponse "Exportação desabilitada (ADMIN_API_KEY não definida)"
// @Failure 500 {object} ErrorResponse "Falha ao gerar a planilha"
// @Failure 503 {object} ErrorResponse "Armazenamento indisponível"
// @Router /v1/directory/export.xlsx [get]
func (h *ExportHandlers) ExportXLSX(c *gin.Context) {
	entries, err := h.store.ListEntries(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list directory for export", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Directory store unavailable"})
		return
	}

	data, err := services.ExportDirectoryXLSX(entries)
	if err != nil {
		h.logger.Error("failed to build directory export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build export"})
		return
	}

	filename := fmt.Sprintf("massagistas-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)

	h.logger.Info("directory exported", zap.Int("entries", len(entries)))
}
