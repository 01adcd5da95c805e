package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler covers the taxonomy, seeding and settings endpoints.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/types", h.listTypes)
	rg.POST("/ledger/seed", h.seedLedger)

	settings := rg.Group("/settings")
	{
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.putSetting)
	}
}

func (h *ledgerHandler) listTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerService.ListTypes(c.Request.Context()))
}

// seedLedger provisions the stock groups and capital mirror structure for the
// caller's ledger. Idempotent, safe to call on every login.
func (h *ledgerHandler) seedLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	if err := h.ledgerService.EnsureSeeded(c.Request.Context(), identityID); err != nil {
		respondServiceError(c, logger, err, "Failed to seed ledger")
		return
	}
	logger.Info("Ledger seeded", slog.Int64("identity_id", identityID))
	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) getSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	key := c.Param("key")

	value, err := h.ledgerService.GetSetting(c.Request.Context(), identityID, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get setting")
		return
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

func (h *ledgerHandler) putSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	key := c.Param("key")

	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.SetSetting(c.Request.Context(), identityID, key, req.Value); err != nil {
		respondServiceError(c, logger, err, "Failed to store setting")
		return
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}
