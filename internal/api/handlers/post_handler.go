package handlers

import (
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/queue"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type PostHandler struct {
	s           service.PostService
	lc          service.LifecycleService
	ph          repository.PublishHistoryRepository
	AsynqClient *asynq.Client
}

func NewPostHandler(s service.PostService, lc service.LifecycleService, ph repository.PublishHistoryRepository, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: s, lc: lc, ph: ph, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.Create(c.Context(), &pc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID != "" {
		post, err := h.s.PostInfo(c.Context(), postID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	filter := transfer.PostFilter{
		Status:     c.Query("status"),
		GroupID:    c.Query("group_id"),
		CampaignID: c.Query("campaign_id"),
		Platform:   c.Query("platform"),
	}
	posts, err := h.s.List(c.Context(), &filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	postID := c.Query("id")

	var upd transfer.PostUpdate
	if err := c.BodyParser(&upd); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.Update(c.Context(), postID, &upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

type scheduleRequest struct {
	ID          string     `json:"id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// SchedulePost is the explicit schedule action: it confirms the transition,
// then enqueues the publish task. Storage errors here surface to the caller,
// unlike auto-save.
func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	var at time.Time
	if req.ScheduledAt != nil {
		at = *req.ScheduledAt
	}
	post, err := h.lc.Schedule(c.Context(), req.ID, at)
	if err != nil {
		return respondError(c, err)
	}

	delay := time.Until(*post.ScheduledAt)
	if delay < 0 {
		delay = 0
	}
	if err := queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error enqueueing publish task",
		})
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UnschedulePost(c *fiber.Ctx) error {
	postID := c.Query("id")
	post, err := h.lc.Unschedule(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

type confirmRequest struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

func (h *PostHandler) ArchivePost(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.lc.Archive(c.Context(), req.ID, req.Confirmed)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RestorePost(c *fiber.Ctx) error {
	postID := c.Query("id")
	post, err := h.lc.Restore(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.lc.Delete(c.Context(), req.ID, req.Confirmed); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) PublishHistory(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post id is required",
		})
	}

	history, err := h.ph.ListByPostID(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(history)
}
