package handlers

import (
	"log/slog"

	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type LaunchHandler struct {
	s service.LaunchPostService
}

func NewLaunchHandler(s service.LaunchPostService) *LaunchHandler {
	return &LaunchHandler{s: s}
}

func (h *LaunchHandler) CreateLaunch(c *fiber.Ctx) error {
	var lc transfer.LaunchPostCreation
	if err := c.BodyParser(&lc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.Create(c.Context(), &lc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *LaunchHandler) ListLaunches(c *fiber.Ctx) error {
	launchID := c.Query("id")
	if launchID != "" {
		launch, err := h.s.LaunchInfo(c.Context(), launchID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(launch)
	}

	launches, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(launches)
}

func (h *LaunchHandler) UpdateLaunch(c *fiber.Ctx) error {
	var upd transfer.LaunchPostUpdate
	if err := c.BodyParser(&upd); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	launch, err := h.s.Update(c.Context(), c.Query("id"), &upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(launch)
}

func (h *LaunchHandler) RemoveLaunch(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
