package service

import (
	"context"
	"strings"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, pc *transfer.PostCreation) (*models.Post, error)
	PostInfo(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, filter *transfer.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, postID string, upd *transfer.PostUpdate) (*models.Post, error)
}

type postService struct {
	pr repository.PostRepository
}

func NewPostService(pr repository.PostRepository) PostService {
	return &postService{pr: pr}
}

// Create persists a single draft post. Posts are born as drafts; scheduling
// is a separate, explicit lifecycle action.
func (s *postService) Create(ctx context.Context, pc *transfer.PostCreation) (*models.Post, error) {
	if pc == nil {
		return nil, models.NewValidationError("post", "request body is required")
	}

	platform := pc.Content.Platform()
	if platform == "" {
		return nil, models.NewValidationError("content", "exactly one platform payload is required")
	}
	if err := validateContent(pc.Content); err != nil {
		return nil, err
	}

	// drafts carry no schedule; the schedule arrives with the explicit
	// schedule action
	return s.pr.Create(ctx, &models.Post{
		Status:     models.PostStatusDraft,
		Platform:   platform,
		Content:    pc.Content,
		CampaignID: pc.CampaignID,
		ProjectID:  pc.ProjectID,
		Notes:      pc.Notes,
	})
}

func (s *postService) PostInfo(ctx context.Context, postID string) (*models.Post, error) {
	if postID == "" {
		return nil, models.NewValidationError("id", "post id is required")
	}
	return s.pr.GetByID(ctx, postID)
}

func (s *postService) List(ctx context.Context, filter *transfer.PostFilter) ([]*models.Post, error) {
	return s.pr.List(ctx, filter)
}

// Update edits content, notes, or organizational references on one post.
// Status and schedule changes go through the lifecycle service instead; a
// group member edited here never touches its siblings.
func (s *postService) Update(ctx context.Context, postID string, upd *transfer.PostUpdate) (*models.Post, error) {
	if postID == "" {
		return nil, models.NewValidationError("id", "post id is required")
	}
	if upd == nil {
		return s.pr.GetByID(ctx, postID)
	}
	if upd.Content != nil {
		if err := validateContent(*upd.Content); err != nil {
			return nil, err
		}
	}

	// lifecycle fields are not reachable through plain updates
	upd.Status = nil
	upd.ScheduledAt = nil
	upd.ClearScheduledAt = false
	upd.PostedURL = nil
	upd.ErrorMessage = nil

	return s.pr.Update(ctx, postID, upd)
}

func validateContent(content models.PostContent) error {
	count := 0
	if content.Twitter != nil {
		count++
		if strings.TrimSpace(content.Twitter.Text) == "" {
			return models.NewValidationError("content.twitter.text", "text is required")
		}
	}
	if content.LinkedIn != nil {
		count++
		if strings.TrimSpace(content.LinkedIn.Text) == "" {
			return models.NewValidationError("content.linkedin.text", "text is required")
		}
	}
	if content.Reddit != nil {
		count++
		if strings.TrimSpace(content.Reddit.Subreddit) == "" {
			return models.NewValidationError("content.reddit.subreddit", "subreddit is required")
		}
		if strings.TrimSpace(content.Reddit.Title) == "" {
			return models.NewValidationError("content.reddit.title", "title is required")
		}
	}
	if count != 1 {
		return models.NewValidationError("content", "exactly one platform payload is required")
	}
	return nil
}
