package routes

import (
	"github.com/gofiber/fiber/v2"
)

func dashboardRoutes(router fiber.Router, h *Handlers) {
	router.Get("/dashboard/stats", h.Auth.AuthJWT, h.Dashboard.GetStats)
}
