package routes

import (
	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/models"

	"github.com/gofiber/fiber/v2"
)

// userRoutes: account management, admins only.
func userRoutes(router fiber.Router, h *Handlers) {
	users := router.Group("/users", h.Auth.AuthJWT, middleware.RequireRole(models.RoleAdmin))

	users.Post("/", h.Users.CreateUser)
	users.Get("/", h.Users.GetUsers)
	users.Get("/teachers", h.Users.GetTeachers)
	users.Put("/:id", h.Users.UpdateUser)
	users.Patch("/:id/toggle-status", h.Users.ToggleUserStatus)
}
