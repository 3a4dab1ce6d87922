package handlers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/crossdeckhq/crossdeck/internal/autosave"
	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

// AutoSaveHandler bridges editor clients to the auto-save controller. The
// client pushes snapshots as the user types; the controller decides when (and
// whether) a repository call happens.
type AutoSaveHandler struct {
	ctrl *autosave.Controller
	pr   repository.PostRepository

	mu       sync.Mutex
	snaps    map[string]autosave.Snapshot
	statuses map[string]string
}

func NewAutoSaveHandler(ctrl *autosave.Controller, pr repository.PostRepository) *AutoSaveHandler {
	return &AutoSaveHandler{
		ctrl:     ctrl,
		pr:       pr,
		snaps:    make(map[string]autosave.Snapshot),
		statuses: make(map[string]string),
	}
}

type attachRequest struct {
	SessionID string `json:"session_id"`
	PostID    string `json:"post_id,omitempty"`
}

func (h *AutoSaveHandler) Attach(c *fiber.Ctx) error {
	var req attachRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	sessionID := req.SessionID
	getSnapshot := func() autosave.Snapshot {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.snaps[sessionID]
	}

	_, err := h.ctrl.Attach(sessionID, getSnapshot, h.saveFunc())
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// editing an existing post seeds the session with its persisted state
	if req.PostID != "" {
		post, err := h.pr.GetByID(c.Context(), req.PostID)
		if err != nil {
			h.detach(sessionID)
			return respondError(c, err)
		}
		seed := autosave.Snapshot{
			PostStatus:  post.Status,
			Content:     post.Content,
			ScheduledAt: post.ScheduledAt,
			Notes:       post.Notes,
		}
		if s, ok := h.ctrl.Session(sessionID); ok {
			s.SeedPost(post.ID, seed)
		}
		h.mu.Lock()
		h.snaps[sessionID] = seed
		h.statuses[sessionID] = post.Status
		h.mu.Unlock()
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"session_id": sessionID})
}

func (h *AutoSaveHandler) PushSnapshot(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	session, ok := h.ctrl.Session(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not attached",
		})
	}

	var snap autosave.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	h.mu.Lock()
	// the post's status is server state; a client snapshot cannot override it,
	// so a session seeded from a scheduled post stays gated even when the
	// pushed snapshot omits the status
	if status, ok := h.statuses[sessionID]; ok {
		snap.PostStatus = status
	}
	h.snaps[sessionID] = snap
	h.mu.Unlock()

	session.Notify()
	return c.SendStatus(fiber.StatusOK)
}

func (h *AutoSaveHandler) SessionStatus(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	session, ok := h.ctrl.Session(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not attached",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  session.Status(),
		"post_id": session.PostID(),
	})
}

func (h *AutoSaveHandler) Detach(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if _, ok := h.ctrl.Session(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not attached",
		})
	}
	h.detach(sessionID)
	return c.SendStatus(fiber.StatusOK)
}

func (h *AutoSaveHandler) detach(sessionID string) {
	if s, ok := h.ctrl.Session(sessionID); ok {
		s.Detach()
	}
	h.mu.Lock()
	delete(h.snaps, sessionID)
	delete(h.statuses, sessionID)
	h.mu.Unlock()
}

// saveFunc persists a snapshot: first successful save of a new session
// creates the draft, later saves update the captured id.
func (h *AutoSaveHandler) saveFunc() autosave.SaveFunc {
	return func(ctx context.Context, postID string, snap autosave.Snapshot) (*models.Post, error) {
		if postID == "" {
			platform := snap.Content.Platform()
			if platform == "" {
				return nil, models.NewValidationError("content", "exactly one platform payload is required")
			}
			return h.pr.Create(ctx, &models.Post{
				Status:   models.PostStatusDraft,
				Platform: platform,
				Content:  snap.Content,
				Notes:    snap.Notes,
			})
		}

		content := snap.Content
		notes := snap.Notes
		return h.pr.Update(ctx, postID, &transfer.PostUpdate{
			Content: &content,
			Notes:   &notes,
		})
	}
}
