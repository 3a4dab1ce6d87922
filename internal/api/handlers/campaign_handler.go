package handlers

import (
	"log/slog"

	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type CampaignHandler struct {
	s service.CampaignService
}

func NewCampaignHandler(s service.CampaignService) *CampaignHandler {
	return &CampaignHandler{s: s}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var cc transfer.CampaignCreation
	if err := c.BodyParser(&cc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.Create(c.Context(), &cc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaignID := c.Query("id")
	if campaignID != "" {
		campaign, err := h.s.CampaignInfo(c.Context(), campaignID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(campaign)
	}

	campaigns, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(campaigns)
}

func (h *CampaignHandler) RemoveCampaign(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
