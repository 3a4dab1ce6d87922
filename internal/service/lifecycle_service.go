package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

// statusTransitions is the full post status machine. Archive is a side
// branch reachable from every live status; restore always lands back in
// draft, never in the pre-archive status.
var statusTransitions = map[string]map[string]bool{
	models.PostStatusDraft: {
		models.PostStatusScheduled: true,
		models.PostStatusPublished: true,
		models.PostStatusArchived:  true,
	},
	models.PostStatusScheduled: {
		models.PostStatusDraft:     true,
		models.PostStatusScheduled: true, // reschedule
		models.PostStatusPublished: true,
		models.PostStatusFailed:    true,
		models.PostStatusArchived:  true,
	},
	models.PostStatusPublished: {
		models.PostStatusArchived: true,
	},
	models.PostStatusFailed: {
		models.PostStatusArchived: true,
	},
	models.PostStatusArchived: {
		models.PostStatusDraft: true, // restore only
	},
}

// CanTransition reports whether the status machine permits from -> to.
func CanTransition(from, to string) bool {
	return statusTransitions[from][to]
}

type LifecycleService interface {
	Schedule(ctx context.Context, postID string, at time.Time) (*models.Post, error)
	Unschedule(ctx context.Context, postID string) (*models.Post, error)
	MarkPublished(ctx context.Context, postID, postedURL string) (*models.Post, error)
	MarkFailed(ctx context.Context, postID string, cause error) (*models.Post, error)
	Archive(ctx context.Context, postID string, confirmed bool) (*models.Post, error)
	Restore(ctx context.Context, postID string) (*models.Post, error)
	Delete(ctx context.Context, postID string, confirmed bool) error
}

type lifecycleService struct {
	pr repository.PostRepository
}

func NewLifecycleService(pr repository.PostRepository) LifecycleService {
	return &lifecycleService{pr: pr}
}

// Schedule moves a draft to scheduled, or replaces an existing schedule.
// The date is validated before any persistence happens.
func (s *lifecycleService) Schedule(ctx context.Context, postID string, at time.Time) (*models.Post, error) {
	if at.IsZero() {
		return nil, models.ErrInvalidSchedule
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(post.Status, models.PostStatusScheduled) {
		return nil, fmt.Errorf("cannot schedule a %s post: %w", post.Status, models.ErrInvalidState)
	}

	status := models.PostStatusScheduled
	return s.pr.Update(ctx, postID, &transfer.PostUpdate{Status: &status, ScheduledAt: &at})
}

// Unschedule clears the schedule and reverts to draft. Clearing a draft that
// has no schedule is a no-op, not an error.
func (s *lifecycleService) Unschedule(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.PostStatusDraft && post.ScheduledAt == nil {
		return post, nil
	}
	if !CanTransition(post.Status, models.PostStatusDraft) {
		return nil, fmt.Errorf("cannot unschedule a %s post: %w", post.Status, models.ErrInvalidState)
	}

	status := models.PostStatusDraft
	return s.pr.Update(ctx, postID, &transfer.PostUpdate{Status: &status, ClearScheduledAt: true})
}

func (s *lifecycleService) MarkPublished(ctx context.Context, postID, postedURL string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(post.Status, models.PostStatusPublished) {
		return nil, fmt.Errorf("cannot publish a %s post: %w", post.Status, models.ErrInvalidState)
	}

	status := models.PostStatusPublished
	upd := &transfer.PostUpdate{Status: &status, PostedURL: &postedURL}
	if post.ScheduledAt == nil {
		// published posts record when they were sent
		now := time.Now().UTC()
		upd.ScheduledAt = &now
	}
	return s.pr.Update(ctx, postID, upd)
}

func (s *lifecycleService) MarkFailed(ctx context.Context, postID string, cause error) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(post.Status, models.PostStatusFailed) {
		return nil, fmt.Errorf("cannot fail a %s post: %w", post.Status, models.ErrInvalidState)
	}

	status := models.PostStatusFailed
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	slog.Info("publish attempt failed", "post_id", postID, "error", message)
	return s.pr.Update(ctx, postID, &transfer.PostUpdate{Status: &status, ErrorMessage: &message})
}

// Archive requires explicit confirmation so automated flows can never
// trigger it.
func (s *lifecycleService) Archive(ctx context.Context, postID string, confirmed bool) (*models.Post, error) {
	if !confirmed {
		return nil, models.ErrConfirmationRequired
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(post.Status, models.PostStatusArchived) {
		return nil, fmt.Errorf("cannot archive a %s post: %w", post.Status, models.ErrInvalidState)
	}
	return s.pr.Archive(ctx, postID)
}

// Restore always lands in draft with the schedule cleared, regardless of the
// pre-archive status. There is no path back to published.
func (s *lifecycleService) Restore(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusArchived {
		return nil, fmt.Errorf("cannot restore a %s post: %w", post.Status, models.ErrInvalidState)
	}
	return s.pr.Restore(ctx, postID)
}

// Delete is terminal and only legal for archived posts.
func (s *lifecycleService) Delete(ctx context.Context, postID string, confirmed bool) error {
	if !confirmed {
		return models.ErrConfirmationRequired
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Status != models.PostStatusArchived {
		return fmt.Errorf("only archived posts can be deleted: %w", models.ErrInvalidState)
	}
	return s.pr.Remove(ctx, postID)
}
