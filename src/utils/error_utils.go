package utils

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"Backend-Feedback/src/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status a service failure should surface with.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, format string, args ...interface{}) *AppError {
	return &AppError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *AppError {
	return NewAppError(fiber.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return NewAppError(fiber.StatusNotFound, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return NewAppError(fiber.StatusForbidden, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return NewAppError(fiber.StatusUnauthorized, format, args...)
}

// StatusOf returns the HTTP status for err, 500 when it is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return fiber.StatusInternalServerError
}

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// ErrorHandler is the single place where errors become HTTP replies.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		return HandleError(c, appErr.Status, appErr.Message)
	case errors.As(err, &validationErrs):
		return HandleError(c, fiber.StatusBadRequest, describeValidation(validationErrs))
	case errors.As(err, &fiberErr):
		return HandleError(c, fiberErr.Code, fiberErr.Message)
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.OriginalURL(), err)
	return HandleError(c, fiber.StatusInternalServerError, "Internal server error")
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must have at least %s items or characters", fe.Field(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
