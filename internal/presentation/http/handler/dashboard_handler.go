package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sahilrao/billforge/internal/application/service"
	"github.com/sahilrao/billforge/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles retrieving the dashboard summary
// @Summary Get Dashboard
// @Description Get estimate counts, recent revenue, low stock items, and recent estimates
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", summary)
}
