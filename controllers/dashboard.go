package controllers

import (
	"net/http"

	"tilecrm-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	overview, err := dc.dashboard.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Not found", "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}
