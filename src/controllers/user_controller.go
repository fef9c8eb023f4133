package controllers

import (
	"Backend-Feedback/src/middleware"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/accounts"
	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	accounts *accounts.Service
}

func NewUserController(accounts *accounts.Service) *UserController {
	return &UserController{accounts: accounts}
}

// CreateUser godoc
// @Summary Create account
// @Description Create an admin or teacher account
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.CreateAccountDto true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var dto models.CreateAccountDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}
	account, err := uc.accounts.CreateAccount(c.Context(), &dto)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    account,
	})
}

// GetUsers godoc
// @Summary List accounts
// @Tags users
// @Produce json
// @Param role query string false "admin or teacher"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search name or email"
// @Param sortBy query string false "createdAt, fullName or email"
// @Param order query string false "asc or desc"
// @Success 200 {object} models.PaginatedResponse
// @Router /users [get]
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.BadRequest("Invalid query parameters")
	}

	list, total, err := uc.accounts.ListAccounts(c.Context(), models.Role(c.Query("role")), params)
	if err != nil {
		return err
	}
	params.Normalize()
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

// GetTeachers godoc
// @Summary List active teachers
// @Tags users
// @Produce json
// @Success 200 {array} models.Account
// @Router /users/teachers [get]
func (uc *UserController) GetTeachers(c *fiber.Ctx) error {
	teachers, err := uc.accounts.ListTeachers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(teachers)
}

// UpdateUser godoc
// @Summary Update account
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param user body models.UpdateAccountDto true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	var dto models.UpdateAccountDto
	if err := parseBody(c, &dto); err != nil {
		return err
	}

	account, err := uc.accounts.UpdateAccount(c.Context(), id, &dto)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    account,
	})
}

// ToggleUserStatus godoc
// @Summary Activate or deactivate account
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/toggle-status [patch]
func (uc *UserController) ToggleUserStatus(c *fiber.Ctx) error {
	id, err := paramObjectID(c, "id")
	if err != nil {
		return err
	}
	account, err := uc.accounts.ToggleStatus(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User status updated",
		"user":    account,
	})
}
