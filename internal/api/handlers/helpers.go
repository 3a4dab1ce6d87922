package handlers

import (
	"errors"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation and
// confirmation errors surface as-is; storage failures stay opaque.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case models.IsValidationError(err), errors.Is(err, models.ErrInvalidSchedule):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case models.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrConfirmationRequired), errors.Is(err, models.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
