package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type tenancyHandler struct {
	tenancyService portssvc.TenancySvcFacade
}

func newTenancyHandler(ts portssvc.TenancySvcFacade) *tenancyHandler {
	return &tenancyHandler{tenancyService: ts}
}

func registerTenancyRoutes(rg *gin.RouterGroup, tenancyService portssvc.TenancySvcFacade) {
	h := newTenancyHandler(tenancyService)

	tenancy := rg.Group("/tenancy")
	{
		tenancy.GET("/family", h.getFamily)
		tenancy.POST("/invites", h.createInvite)
		tenancy.POST("/join", h.joinFamily)
	}
}

func (h *tenancyHandler) getFamily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	familyID, err := h.tenancyService.FamilyID(c.Request.Context(), identityID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve family")
		return
	}
	c.JSON(http.StatusOK, dto.FamilyResponse{IdentityID: identityID, FamilyID: familyID})
}

func (h *tenancyHandler) createInvite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	token, err := h.tenancyService.CreateInvite(c.Request.Context(), identityID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create invite")
		return
	}
	logger.Info("Invite issued", slog.Int64("identity_id", identityID))
	c.JSON(http.StatusCreated, dto.InviteResponse{Token: token})
}

// joinFamily redeems a single-use token. The token is consumed even if the
// caller was already a member of the issuing family.
func (h *tenancyHandler) joinFamily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var req dto.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	redeemed, err := h.tenancyService.RedeemInvite(c.Request.Context(), req.Token, identityID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to redeem invite")
		return
	}
	if !redeemed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown or already used token"})
		return
	}

	familyID, err := h.tenancyService.FamilyID(c.Request.Context(), identityID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve family")
		return
	}
	logger.Info("Invite redeemed", slog.Int64("identity_id", identityID), slog.Int64("family_id", familyID))
	c.JSON(http.StatusOK, dto.FamilyResponse{IdentityID: identityID, FamilyID: familyID})
}
