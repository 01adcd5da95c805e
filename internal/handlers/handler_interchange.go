package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxImportBytes bounds the uploaded archive size.
const maxImportBytes = 32 << 20

type interchangeHandler struct {
	interchangeService portssvc.InterchangeSvcFacade
}

func newInterchangeHandler(is portssvc.InterchangeSvcFacade) *interchangeHandler {
	return &interchangeHandler{interchangeService: is}
}

func registerInterchangeRoutes(rg *gin.RouterGroup, interchangeService portssvc.InterchangeSvcFacade) {
	h := newInterchangeHandler(interchangeService)

	admin := rg.Group("/admin")
	{
		admin.GET("/export", h.exportArchive)
		admin.POST("/import", h.importArchive)
	}
}

func (h *interchangeHandler) exportArchive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := identityFromCtx(c); !ok {
		return
	}

	// Buffer first so a failed dump cannot truncate a streamed response.
	var buf bytes.Buffer
	if err := h.interchangeService.Export(c.Request.Context(), &buf); err != nil {
		respondServiceError(c, logger, err, "Failed to export")
		return
	}

	filename := "ledger-" + time.Now().Format("20060102-150405") + ".zip"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// importArchive destructively replaces the entire store with the uploaded
// archive contents.
func (h *interchangeHandler) importArchive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := identityFromCtx(c); !ok {
		return
	}

	archive, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if len(archive) > maxImportBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Archive too large"})
		return
	}
	if len(archive) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty archive"})
		return
	}

	if err := h.interchangeService.Import(c.Request.Context(), archive); err != nil {
		respondServiceError(c, logger, err, "Failed to import")
		return
	}
	logger.Info("Store restored from archive", slog.Int("archive_bytes", len(archive)))
	c.Status(http.StatusNoContent)
}
