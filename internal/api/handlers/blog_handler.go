package handlers

import (
	"log/slog"

	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	s service.BlogDraftService
}

func NewBlogHandler(s service.BlogDraftService) *BlogHandler {
	return &BlogHandler{s: s}
}

func (h *BlogHandler) CreateDraft(c *fiber.Ctx) error {
	var bc transfer.BlogDraftCreation
	if err := c.BodyParser(&bc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.Create(c.Context(), &bc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *BlogHandler) ListDrafts(c *fiber.Ctx) error {
	draftID := c.Query("id")
	if draftID != "" {
		draft, err := h.s.DraftInfo(c.Context(), draftID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(draft)
	}

	drafts, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(drafts)
}

func (h *BlogHandler) UpdateDraft(c *fiber.Ctx) error {
	var upd transfer.BlogDraftUpdate
	if err := c.BodyParser(&upd); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	draft, err := h.s.Update(c.Context(), c.Query("id"), &upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(draft)
}

func (h *BlogHandler) RemoveDraft(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
