package routes

import (
	"time"

	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func authRoutes(router fiber.Router, h *Handlers) {
	auth := router.Group("/auth")

	login := []fiber.Handler{}
	if h.LoginLimit > 0 {
		login = append(login, limiter.New(limiter.Config{
			Max:        h.LoginLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.HandleError(c, fiber.StatusTooManyRequests, "Too many login attempts. Please try again later.")
			},
		}))
	}
	login = append(login, h.AuthC.Login)

	auth.Post("/login", login...)
	auth.Post("/logout", h.Auth.AuthJWT, h.AuthC.Logout)
	auth.Get("/me", h.Auth.AuthJWT, h.AuthC.Me)
}
