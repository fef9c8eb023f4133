package routes

import (
	"time"

	"Backend-Feedback/src/controllers"
	"Backend-Feedback/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything the routes need.
type Handlers struct {
	Auth      *middleware.Auth
	AuthC     *controllers.AuthController
	Users     *controllers.UserController
	Forms     *controllers.FormController
	Responses *controllers.ResponseController
	Dashboard *controllers.DashboardController

	// LoginLimit caps login attempts per IP per minute; zero disables the limiter.
	LoginLimit int
}

func InitRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api")

	authRoutes(api, h)
	userRoutes(api, h)
	formRoutes(api, h)
	responseRoutes(api, h)
	dashboardRoutes(api, h)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now()})
	})
}
