package controllers

import (
	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/qrcode"
	"Backend-Feedback/src/services/forms"
	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
)

type FormController struct {
	forms   *forms.Service
	baseURL string
}

func NewFormController(forms *forms.Service, baseURL string) *FormController {
	return &FormController{forms: forms, baseURL: baseURL}
}

// CreateForm godoc
// @Summary Create form
// @Description Admin forms are approved immediately and need assignedTo; teacher forms wait for review
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.FormDto true "Form definition"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /forms [post]
func (fc *FormController) CreateForm(c *fiber.Ctx) error {
	var dto models.FormDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}
	form, err := fc.forms.CreateForm(c.Context(), middleware.CurrentUser(c), &dto)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Form created successfully",
		"form":    form,
	})
}

// GetForms godoc
// @Summary List forms
// @Description Admins see every form, teachers the forms they created or are assigned to
// @Tags forms
// @Produce json
// @Success 200 {array} models.Form
// @Router /forms [get]
func (fc *FormController) GetForms(c *fiber.Ctx) error {
	list, err := fc.forms.ListForms(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetFormByID godoc
// @Summary Get form
// @Description Staff with view rights get the full form, everyone else the public view of a fillable form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} models.Form
// @Failure 404 {object} models.ErrorResponse
// @Router /forms/{id} [get]
func (fc *FormController) GetFormByID(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}

	if user := middleware.CurrentUser(c); user != nil {
		form, err := fc.forms.GetForm(c.Context(), user, id)
		if err == nil {
			return c.JSON(form)
		}
		if utils.StatusOf(err) != fiber.StatusForbidden {
			return err
		}
	}

	public, err := fc.forms.GetPublicForm(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(public)
}

// GetFormQRCode godoc
// @Summary Share link QR code
// @Tags forms
// @Produce png
// @Param id path string true "Form ID"
// @Param size query int false "Image size in pixels"
// @Success 200 {file} binary
// @Failure 403 {object} models.ErrorResponse
// @Router /forms/{id}/qrcode [get]
func (fc *FormController) GetFormQRCode(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	form, err := fc.forms.GetForm(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}

	link := forms.ShareLink(fc.baseURL, form.ID)
	png, err := qrcode.GenerateQRCode(link, c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return err
	}
	c.Set("X-Share-Link", link)
	c.Type("png")
	return c.Send(png)
}

// UpdateForm godoc
// @Summary Update form
// @Tags forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param form body models.FormDto true "Form definition"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /forms/{id} [put]
func (fc *FormController) UpdateForm(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	var dto models.FormDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}
	form, err := fc.forms.UpdateForm(c.Context(), middleware.CurrentUser(c), id, &dto)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Form updated successfully",
		"form":    form,
	})
}

// DeleteForm godoc
// @Summary Delete form
// @Description Deletes the form together with all of its responses
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /forms/{id} [delete]
func (fc *FormController) DeleteForm(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	deleted, err := fc.forms.DeleteForm(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":          "Form deleted successfully",
		"deletedResponses": deleted,
	})
}

// ToggleFormStatus godoc
// @Summary Open or close form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Router /forms/{id}/toggle-status [patch]
func (fc *FormController) ToggleFormStatus(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	form, err := fc.forms.ToggleStatus(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Form status updated",
		"form":    form,
	})
}

// ApproveForm godoc
// @Summary Approve pending form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /forms/{id}/approve [patch]
func (fc *FormController) ApproveForm(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	form, err := fc.forms.Approve(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Form approved",
		"form":    form,
	})
}

// RejectForm godoc
// @Summary Reject pending form
// @Tags forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param body body models.RejectFormDto false "Rejection reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /forms/{id}/reject [patch]
func (fc *FormController) RejectForm(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	var dto models.RejectFormDto
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&dto); err != nil {
			return utils.BadRequest("Invalid input")
		}
	}
	form, err := fc.forms.Reject(c.Context(), middleware.CurrentUser(c), id, dto.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Form rejected",
		"form":    form,
	})
}
