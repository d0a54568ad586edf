package api

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InstructorHandler serves the instructor's own profile and dashboard.
type InstructorHandler struct {
	instructorService service.InstructorService
	dashboardService  service.DashboardService
}

func NewInstructorHandler(instructorService service.InstructorService, dashboardService service.DashboardService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService, dashboardService: dashboardService}
}

func (h *InstructorHandler) GetProfile(c *gin.Context) {
	profile, err := h.instructorService.GetOrCreateProfile(c.Request.Context(), getSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *InstructorHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.instructorService.UpdateProfile(c.Request.Context(), getSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *InstructorHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), getSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTrend godoc
// @Summary Performed exercise counts over time
// @Tags Dashboard
// @Produce json
// @Param range query string false "daily, monthly or yearly" default(daily)
// @Success 200 {array} domain.TrendPoint
// @Failure 400 {object} gin.H "Unknown range"
// @Router /instructor/dashboard/trend [get]
func (h *InstructorHandler) GetTrend(c *gin.Context) {
	rng := domain.TrendRange(c.DefaultQuery("range", string(domain.TrendDaily)))
	points, err := h.dashboardService.PerformanceTrend(c.Request.Context(), getSession(c), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetExerciseCatalog lists the suggested exercise names.
func GetExerciseCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exercises": domain.ExerciseCatalog})
}
