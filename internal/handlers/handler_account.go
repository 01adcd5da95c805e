package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.PUT("/:accountID/name", h.renameAccount)
		accounts.DELETE("/:accountID", h.archiveAccount)
	}
}

// createAccount creates the account and, for a nonzero opening value, posts
// the opening transaction against the capital mirror in the same request.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), identityID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}
	logger.Info("Account created", slog.Int64("account_id", account.ID), slog.String("name", account.Name))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	groupID, err := strconv.ParseInt(c.Query("groupID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "groupID query parameter is required"})
		return
	}

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), identityID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}
	out := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *accountHandler) renameAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.RenameAccount(c.Request.Context(), identityID, accountID, req.Name); err != nil {
		respondServiceError(c, logger, err, "Failed to rename account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) archiveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	if err := h.ledgerService.ArchiveAccount(c.Request.Context(), identityID, accountID); err != nil {
		respondServiceError(c, logger, err, "Failed to archive account")
		return
	}
	logger.Info("Account archived", slog.Int64("account_id", accountID))
	c.Status(http.StatusNoContent)
}
