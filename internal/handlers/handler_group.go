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

type groupHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newGroupHandler(ls portssvc.LedgerSvcFacade) *groupHandler {
	return &groupHandler{ledgerService: ls}
}

func registerGroupRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newGroupHandler(ledgerService)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.PUT("/:groupID/name", h.renameGroup)
		groups.DELETE("/:groupID", h.archiveGroup)
	}
}

func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	group, err := h.ledgerService.CreateGroup(c.Request.Context(), identityID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create group")
		return
	}
	logger.Info("Group created", slog.Int64("group_id", group.ID), slog.String("name", group.Name))
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

func (h *groupHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}

	typeID, err := strconv.ParseInt(c.Query("typeID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "typeID query parameter is required"})
		return
	}

	groups, err := h.ledgerService.ListGroups(c.Request.Context(), identityID, typeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list groups")
		return
	}
	out := make([]dto.GroupResponse, len(groups))
	for i := range groups {
		out[i] = dto.ToGroupResponse(&groups[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *groupHandler) renameGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	groupID, err := strconv.ParseInt(c.Param("groupID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.RenameGroup(c.Request.Context(), identityID, groupID, req.Name); err != nil {
		respondServiceError(c, logger, err, "Failed to rename group")
		return
	}
	c.Status(http.StatusNoContent)
}

// archiveGroup soft-archives the group and every active member account, each
// zeroed against the correction account first.
func (h *groupHandler) archiveGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identityID, ok := identityFromCtx(c)
	if !ok {
		return
	}
	groupID, err := strconv.ParseInt(c.Param("groupID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if err := h.ledgerService.ArchiveGroup(c.Request.Context(), identityID, groupID); err != nil {
		respondServiceError(c, logger, err, "Failed to archive group")
		return
	}
	logger.Info("Group archived", slog.Int64("group_id", groupID))
	c.Status(http.StatusNoContent)
}
