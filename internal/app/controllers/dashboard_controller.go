package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
)

// DashboardController serves the member dashboard
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the caller's dashboard summary.
// Failed sections are zeroed and listed in data.incomplete; the response is still 200.
// @Summary Get dashboard summary
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	stats := c.dashboardService.ComputeSummary(ctx.Request.Context(), memberID)
	message := "Dashboard retrieved successfully"
	if len(stats.Incomplete) > 0 {
		message = "Dashboard retrieved with missing sections"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, message))
}
