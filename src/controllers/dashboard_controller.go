package controllers

import (
	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/services/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	dashboard *dashboard.Service
}

func NewDashboardController(dashboard *dashboard.Service) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// GetStats godoc
// @Summary Dashboard counters
// @Description Totals over every form for admins, over assigned forms for teachers
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /dashboard/stats [get]
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	stats, err := dc.dashboard.Stats(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
