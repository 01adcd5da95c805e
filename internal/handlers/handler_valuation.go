package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// valuationHandler exposes the read-only balance and value computations.
type valuationHandler struct {
	valuationService portssvc.ValuationSvcFacade
}

func newValuationHandler(vs portssvc.ValuationSvcFacade) *valuationHandler {
	return &valuationHandler{valuationService: vs}
}

func registerValuationRoutes(rg *gin.RouterGroup, valuationService portssvc.ValuationSvcFacade) {
	h := newValuationHandler(valuationService)

	valuation := rg.Group("/valuation")
	{
		valuation.GET("/types", h.listTypesWithValue)
		valuation.GET("/types/:typeID/value", h.typeValue)
		valuation.GET("/types/:typeID/groups", h.listGroupsWithValue)
		valuation.GET("/groups/:groupID/value", h.groupValue)
		valuation.GET("/groups/:groupID/accounts", h.listAccountsWithValue)
		valuation.GET("/accounts/:accountID/balance", h.accountBalance)
		valuation.GET("/accounts/:accountID/value", h.accountValue)
		valuation.GET("/dashboard", h.dashboardBalance)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *valuationHandler) respondScalar(c *gin.Context, id int64, value decimal.Decimal, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{ID: id, Value: value})
}

func (h *valuationHandler) listTypesWithValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	lines, err := h.valuationService.ListTypesWithValue(c.Request.Context(), identityID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to value types")
		return
	}
	c.JSON(http.StatusOK, dto.ToValueLineResponses(lines))
}

func (h *valuationHandler) typeValue(c *gin.Context) {
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	typeID, ok := pathID(c, "typeID")
	if !ok {
		return
	}
	value, err := h.valuationService.TypeValue(c.Request.Context(), identityID, typeID)
	h.respondScalar(c, typeID, value, err, "Failed to value type")
}

func (h *valuationHandler) listGroupsWithValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	typeID, ok := pathID(c, "typeID")
	if !ok {
		return
	}
	lines, err := h.valuationService.ListGroupsWithValue(c.Request.Context(), identityID, typeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to value groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToValueLineResponses(lines))
}

func (h *valuationHandler) groupValue(c *gin.Context) {
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupID")
	if !ok {
		return
	}
	value, err := h.valuationService.GroupValue(c.Request.Context(), identityID, groupID)
	h.respondScalar(c, groupID, value, err, "Failed to value group")
}

func (h *valuationHandler) listAccountsWithValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupID")
	if !ok {
		return
	}
	lines, err := h.valuationService.ListAccountsWithValue(c.Request.Context(), identityID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to value accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToValueLineResponses(lines))
}

func (h *valuationHandler) accountBalance(c *gin.Context) {
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "accountID")
	if !ok {
		return
	}
	balance, err := h.valuationService.AccountBalance(c.Request.Context(), identityID, accountID)
	h.respondScalar(c, accountID, balance, err, "Failed to compute balance")
}

func (h *valuationHandler) accountValue(c *gin.Context) {
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "accountID")
	if !ok {
		return
	}
	value, err := h.valuationService.AccountValue(c.Request.Context(), identityID, accountID)
	h.respondScalar(c, accountID, value, err, "Failed to compute value")
}

// dashboardBalance sums the raw balances of the accounts the owner selected
// into the dashboard setting.
func (h *valuationHandler) dashboardBalance(c *gin.Context) {
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	balance, err := h.valuationService.SelectedAccountsBalance(c.Request.Context(), identityID)
	h.respondScalar(c, identityID, balance, err, "Failed to compute dashboard balance")
}
