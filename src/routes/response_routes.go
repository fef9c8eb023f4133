package routes

import (
	"github.com/gofiber/fiber/v2"
)

func responseRoutes(router fiber.Router, h *Handlers) {
	responses := router.Group("/responses")

	// public
	responses.Get("/re-feedback/:responseId", h.Responses.GetReFeedbackData)
	responses.Post("/:formId/re-feedback/:responseId", h.Responses.SubmitReFeedback)
	responses.Post("/:formId", h.Responses.SubmitResponse)

	// staff
	responses.Get("/:id/responses", h.Auth.AuthJWT, h.Responses.GetResponses)
	responses.Get("/:id/lower-feedback", h.Auth.AuthJWT, h.Responses.GetLowerFeedback)
	responses.Get("/:id/re-feedbacks", h.Auth.AuthJWT, h.Responses.GetReFeedbacks)
	responses.Get("/:id/export", h.Auth.AuthJWT, h.Responses.ExportResponses)
}
