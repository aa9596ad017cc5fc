package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/seed"
)

// HealthController reports liveness and readiness
type HealthController struct {
	tracker *seed.Tracker
}

// NewHealthController creates a new HealthController
func NewHealthController(tracker *seed.Tracker) *HealthController {
	return &HealthController{tracker: tracker}
}

// Health always answers 200 and includes the last seed outcome
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.report("ok"))
}

// Ready answers 503 until the catalog seed has completed without failing
// @Summary Readiness
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse "Catalog seed failed or has not run"
// @Router /ready [get]
func (c *HealthController) Ready(ctx *gin.Context) {
	if !c.tracker.Ready() {
		ctx.JSON(http.StatusServiceUnavailable, c.report("degraded"))
		return
	}
	ctx.JSON(http.StatusOK, c.report("ready"))
}

func (c *HealthController) report(status string) dto.HealthResponse {
	r := c.tracker.Last()
	return dto.HealthResponse{
		Status: status,
		Seed: dto.SeedResponse{
			Status:         string(r.Status),
			Source:         r.Source,
			CoursesWritten: r.CoursesWritten,
			EdgesWritten:   r.EdgesWritten,
			DroppedEdges:   len(r.DroppedEdges),
			DroppedCourses: len(r.DroppedCourses),
			Error:          r.ErrorMessage(),
			FinishedAt:     r.FinishedAt,
		},
	}
}
