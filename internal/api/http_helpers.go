package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sonali689/rebate-portal/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error with a generic body.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrMissingRollNumber),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrExceedsMaxPeriod),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidStatusFilter),
		errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrAmountMismatch),
		errors.Is(err, services.ErrInvalidOrExpiredCode):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotFoundOrUnverified),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrStudentNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateIdentity),
		errors.Is(err, services.ErrDuplicateBill),
		errors.Is(err, services.ErrAlreadyProcessed):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
