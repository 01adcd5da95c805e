package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/famledger/famledger/internal/core/domain"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	queryService  portssvc.QuerySvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade, qs portssvc.QuerySvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls, queryService: qs}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, queryService portssvc.QuerySvcFacade) {
	h := newTransactionHandler(ledgerService, queryService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/timeline", h.listTimeline)
		transactions.GET("/:txnID", h.getTransaction)
		transactions.PUT("/:txnID/amount", h.updateAmount)
		transactions.DELETE("/:txnID", h.deleteTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), identityID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}
	logger.Info("Transaction created", slog.Int64("txn_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Invalid filter")
		return
	}

	txns, err := h.queryService.ListTransactions(c.Request.Context(), identityID, params.Limit, params.Offset, filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

// listTimeline returns postings oldest-first for charting. typeID or groupID
// scopes the series to one side of the books.
func (h *transactionHandler) listTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Invalid filter")
		return
	}

	var scope domain.ChronoScope
	if params.TypeID != nil {
		scope.TypeID = params.TypeID
	} else if params.GroupID != nil {
		// The group restriction is the series scope here, not a filter leg.
		scope.GroupID = params.GroupID
		filter.GroupID = nil
	}

	txns, err := h.queryService.ListTransactionsChronological(c.Request.Context(), identityID, scope, filter, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	txnID, err := strconv.ParseInt(c.Param("txnID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	txn, err := h.queryService.GetTransaction(c.Request.Context(), identityID, txnID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) updateAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	txnID, err := strconv.ParseInt(c.Param("txnID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var req dto.UpdateTransactionAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.UpdateTransactionAmount(c.Request.Context(), identityID, txnID, req.Amount); err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction amount")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	txnID, err := strconv.ParseInt(c.Param("txnID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), identityID, txnID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete transaction")
		return
	}
	logger.Info("Transaction deleted", slog.Int64("txn_id", txnID))
	c.Status(http.StatusNoContent)
}
