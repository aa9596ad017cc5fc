package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemap/internal/app/services"
	"github.com/yigit/coursemap/internal/middleware"
)

// GraphController serves the catalog graph
type GraphController struct {
	graphService services.GraphService
}

// NewGraphController creates a new GraphController
func NewGraphController(graphService services.GraphService) *GraphController {
	return &GraphController{graphService: graphService}
}

// GetGraph returns the positioned catalog graph
// @Summary Catalog graph
// @Description Every course as a node placed by cycle, and every prerequisite as an edge from requirement to course
// @Tags graph
// @Produce json
// @Success 200 {object} dto.GraphResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /graph [get]
func (c *GraphController) GetGraph(ctx *gin.Context) {
	graph, err := c.graphService.GetGraph(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, graph)
}

// GetCourse returns one course with its prerequisites and dependents
// @Summary Course detail
// @Tags graph
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} dto.CourseDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *GraphController) GetCourse(ctx *gin.Context) {
	course, err := c.graphService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}
