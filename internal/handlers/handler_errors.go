package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto HTTP statuses. fallback is the
// client-facing message for unexpected failures; the real error stays in logs.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate entity", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnresolvedMirror):
		logger.Warn("Unresolved mirror counterpart", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown or already used token"})
	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn("Contention retries exhausted", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unavailable, retry"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// identityFromCtx pulls the authenticated identity or writes a 401 and
// reports false.
func identityFromCtx(c *gin.Context) (int64, bool) {
	identityID, ok := middleware.GetIdentityFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return identityID, true
}
