package controllers

import (
	"fmt"

	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/responses"

	"github.com/gofiber/fiber/v2"
)

type ResponseController struct {
	responses *responses.Service
}

func NewResponseController(responses *responses.Service) *ResponseController {
	return &ResponseController{responses: responses}
}

// SubmitResponse godoc
// @Summary Submit feedback
// @Description Anonymous submission through the share link, one per student and batch per day
// @Tags responses
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param response body models.SubmitResponseDto true "Answers"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /responses/{formId} [post]
func (rc *ResponseController) SubmitResponse(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "formId")
	if err != nil {
		return err
	}
	var dto models.SubmitResponseDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}

	response, err := rc.responses.SubmitResponse(c.Context(), formID, &dto)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback submitted successfully",
		"response": response,
	})
}

// GetResponses godoc
// @Summary List responses of a form
// @Tags responses
// @Produce json
// @Param id path string true "Form ID"
// @Param batches query string false "Comma separated batch filter"
// @Success 200 {object} models.ResponseListResult
// @Failure 403 {object} models.ErrorResponse
// @Router /responses/{id}/responses [get]
func (rc *ResponseController) GetResponses(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	result, err := rc.responses.ListResponses(c.Context(), middleware.CurrentUser(c), formID, queryBatches(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetLowerFeedback godoc
// @Summary Lower feedback by student
// @Description Responses with a "No" or a rating below 8, grouped by student and batch
// @Tags responses
// @Produce json
// @Param id path string true "Form ID"
// @Param batches query string false "Comma separated batch filter"
// @Success 200 {array} models.LowerFeedbackGroup
// @Router /responses/{id}/lower-feedback [get]
func (rc *ResponseController) GetLowerFeedback(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	groups, err := rc.responses.LowerFeedback(c.Context(), middleware.CurrentUser(c), formID, queryBatches(c))
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// GetReFeedbacks godoc
// @Summary Re-feedback comparisons
// @Tags responses
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {array} models.ReFeedbackComparison
// @Router /responses/{id}/re-feedbacks [get]
func (rc *ResponseController) GetReFeedbacks(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	list, err := rc.responses.ReFeedbackComparisons(c.Context(), middleware.CurrentUser(c), formID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// ExportResponses godoc
// @Summary Export responses to Excel
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Form ID"
// @Param batches query string false "Comma separated batch filter"
// @Success 200 {file} binary
// @Router /responses/{id}/export [get]
func (rc *ResponseController) ExportResponses(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	buf, filename, err := rc.responses.Export(c.Context(), middleware.CurrentUser(c), formID, queryBatches(c))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// GetReFeedbackData godoc
// @Summary Re-feedback page data
// @Tags responses
// @Produce json
// @Param responseId path string true "Original response ID"
// @Success 200 {object} models.ReFeedbackData
// @Failure 404 {object} models.ErrorResponse
// @Router /responses/re-feedback/{responseId} [get]
func (rc *ResponseController) GetReFeedbackData(c *fiber.Ctx) error {
	responseID, err := paramObjectID(c, "responseId")
	if err != nil {
		return err
	}
	data, err := rc.responses.GetReFeedbackData(c.Context(), responseID)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// SubmitReFeedback godoc
// @Summary Submit re-feedback
// @Description One correction per flagged response; Yes answers cannot turn into No and ratings below 8 need a reason
// @Tags responses
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param responseId path string true "Original response ID"
// @Param response body models.SubmitResponseDto true "Corrected answers"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /responses/{formId}/re-feedback/{responseId} [post]
func (rc *ResponseController) SubmitReFeedback(c *fiber.Ctx) error {
	formID, err := paramObjectID(c, "formId")
	if err != nil {
		return err
	}
	responseID, err := paramObjectID(c, "responseId")
	if err != nil {
		return err
	}
	var dto models.SubmitResponseDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}

	response, err := rc.responses.SubmitReFeedback(c.Context(), formID, responseID, &dto)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Re-feedback submitted successfully",
		"response": response,
	})
}
