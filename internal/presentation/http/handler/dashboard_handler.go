package handler

import (
	"github.com/gin-gonic/gin"

	"carwash-api/internal/application/service"
	"carwash-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles KPI dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles the KPI snapshot. Without date filters it covers the current
// day; with start_date/end_date it covers the window.
func (h *DashboardHandler) Stats(c *gin.Context) {
	from := parseDateQuery(c, "start_date")
	to := parseDateQuery(c, "end_date")

	if from != nil && to != nil {
		stats, err := h.dashboardService.Range(c.Request.Context(), *from, *to)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Dashboard stats retrieved successfully", stats)
		return
	}

	stats, err := h.dashboardService.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
