package routes

import (
	"github.com/gofiber/fiber/v2"
)

func formRoutes(router fiber.Router, h *Handlers) {
	forms := router.Group("/forms")

	// public fill page, staff get the full form
	forms.Get("/:id", h.Auth.OptionalAuth, h.Forms.GetFormByID)

	forms.Post("/", h.Auth.AuthJWT, h.Forms.CreateForm)
	forms.Get("/", h.Auth.AuthJWT, h.Forms.GetForms)
	forms.Get("/:id/qrcode", h.Auth.AuthJWT, h.Forms.GetFormQRCode)
	forms.Put("/:id", h.Auth.AuthJWT, h.Forms.UpdateForm)
	forms.Delete("/:id", h.Auth.AuthJWT, h.Forms.DeleteForm)
	forms.Patch("/:id/toggle-status", h.Auth.AuthJWT, h.Forms.ToggleFormStatus)
	forms.Patch("/:id/approve", h.Auth.AuthJWT, h.Forms.ApproveForm)
	forms.Patch("/:id/reject", h.Auth.AuthJWT, h.Forms.RejectForm)
}
