package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/app/services"
	"github.com/yigit/coursemap/internal/middleware"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
)

// ProgressController handles the per-user progress ledger
type ProgressController struct {
	progressService services.ProgressService
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService services.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// SyncProgress upserts a batch of course statuses
// @Summary Sync progress
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SyncProgressRequest true "Batch of course statuses"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown status or course"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /sync-progress [post]
func (c *ProgressController) SyncProgress(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenNotFound)
		return
	}

	var req dto.SyncProgressRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.progressService.Sync(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "success", Message: "Progress synchronized"})
}

// GetProgress lists the user's stored statuses
// @Summary My progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProgressResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenNotFound)
		return
	}

	progress, err := c.progressService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}
