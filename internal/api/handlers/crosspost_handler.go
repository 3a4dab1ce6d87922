package handlers

import (
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/queue"
	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type CrosspostHandler struct {
	s           service.CrosspostService
	AsynqClient *asynq.Client
}

func NewCrosspostHandler(s service.CrosspostService, asynqClient *asynq.Client) *CrosspostHandler {
	return &CrosspostHandler{s: s, AsynqClient: asynqClient}
}

// CreateCrosspost expands one authoring session into posts and, when the
// session was submitted as scheduled, enqueues a publish task per member.
func (h *CrosspostHandler) CreateCrosspost(c *fiber.Ctx) error {
	var cc transfer.CrosspostCreation
	if err := c.BodyParser(&cc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	posts, err := h.s.CreateCrosspost(c.Context(), &cc)
	if err != nil {
		return respondError(c, err)
	}

	for _, post := range posts {
		if post.Status != models.PostStatusScheduled || post.ScheduledAt == nil {
			continue
		}
		delay := time.Until(*post.ScheduledAt)
		if delay < 0 {
			delay = 0
		}
		if err := queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay); err != nil {
			// the sweep job picks the post up later
			slog.Error("enqueue failed for crosspost member", "post_id", post.ID, "error", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
