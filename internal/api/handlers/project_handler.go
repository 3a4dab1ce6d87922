package handlers

import (
	"log/slog"

	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	s service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{s: s}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var pc transfer.ProjectCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	created, err := h.s.Create(c.Context(), &pc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(created)
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projectID := c.Query("id")
	if projectID != "" {
		project, err := h.s.ProjectInfo(c.Context(), projectID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(project)
	}

	projects, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

func (h *ProjectHandler) RemoveProject(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
