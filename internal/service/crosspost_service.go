package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/google/uuid"
)

type CrosspostService interface {
	CreateCrosspost(ctx context.Context, cc *transfer.CrosspostCreation) ([]*models.Post, error)
}

type crosspostService struct {
	pr repository.PostRepository
}

func NewCrosspostService(pr repository.PostRepository) CrosspostService {
	return &crosspostService{pr: pr}
}

// CreateCrosspost expands one authoring session into posts. Targeting N>=2
// subreddits produces N reddit posts sharing a fresh group id; a single
// subreddit produces one ungrouped post. Twitter/LinkedIn payloads attached
// to the session become separate posts that never join the group. Validation
// runs before anything is created, so a bad entry creates zero posts.
func (s *crosspostService) CreateCrosspost(ctx context.Context, cc *transfer.CrosspostCreation) ([]*models.Post, error) {
	if cc == nil {
		return nil, models.NewValidationError("crosspost", "request body is required")
	}
	if err := s.validate(cc); err != nil {
		return nil, err
	}

	var pending []*models.Post

	var groupID, groupType *string
	if len(cc.Subreddits) >= 2 {
		id := uuid.NewString()
		gt := models.GroupTypeRedditCrosspost
		groupID = &id
		groupType = &gt
	}

	for _, target := range cc.Subreddits {
		scheduledAt := cc.ScheduledAt
		if target.ScheduledAt != nil {
			scheduledAt = target.ScheduledAt
		}
		pending = append(pending, &models.Post{
			Status:   cc.Status,
			Platform: models.PlatformReddit,
			Content: models.PostContent{
				Reddit: &models.RedditContent{
					Subreddit: target.Subreddit,
					Title:     stringOr(target.Title, cc.Title),
					Body:      stringOr(target.Body, cc.Body),
					Flair:     stringOr(target.Flair, cc.Flair),
					URL:       stringOr(target.URL, cc.URL),
				},
			},
			ScheduledAt: copyTime(scheduledAt),
			GroupID:     groupID,
			GroupType:   groupType,
			CampaignID:  cc.CampaignID,
			ProjectID:   cc.ProjectID,
			Notes:       cc.Notes,
		})
	}

	if cc.Twitter != nil {
		tw := *cc.Twitter
		pending = append(pending, &models.Post{
			Status:      cc.Status,
			Platform:    models.PlatformTwitter,
			Content:     models.PostContent{Twitter: &tw},
			ScheduledAt: copyTime(cc.ScheduledAt),
			CampaignID:  cc.CampaignID,
			ProjectID:   cc.ProjectID,
			Notes:       cc.Notes,
		})
	}
	if cc.LinkedIn != nil {
		li := *cc.LinkedIn
		pending = append(pending, &models.Post{
			Status:      cc.Status,
			Platform:    models.PlatformLinkedIn,
			Content:     models.PostContent{LinkedIn: &li},
			ScheduledAt: copyTime(cc.ScheduledAt),
			CampaignID:  cc.CampaignID,
			ProjectID:   cc.ProjectID,
			Notes:       cc.Notes,
		})
	}

	created := make([]*models.Post, 0, len(pending))
	for _, post := range pending {
		stored, err := s.pr.Create(ctx, post)
		if err != nil {
			s.rollback(ctx, created)
			return nil, fmt.Errorf("creating crosspost member: %w", err)
		}
		created = append(created, stored)
	}
	return created, nil
}

func (s *crosspostService) validate(cc *transfer.CrosspostCreation) error {
	if len(cc.Subreddits) == 0 {
		return models.NewValidationError("subreddits", "at least one subreddit is required")
	}

	switch cc.Status {
	case "":
		cc.Status = models.PostStatusDraft
	case models.PostStatusDraft, models.PostStatusScheduled:
	default:
		return models.NewValidationError("status", "must be draft or scheduled")
	}

	seen := make(map[string]bool, len(cc.Subreddits))
	for i, target := range cc.Subreddits {
		field := fmt.Sprintf("subreddits[%d]", i)
		name := strings.TrimSpace(target.Subreddit)
		if name == "" {
			return models.NewValidationError(field+".subreddit", "subreddit name is required")
		}
		if seen[name] {
			return models.NewValidationError(field+".subreddit", "duplicate subreddit "+name)
		}
		seen[name] = true

		if strings.TrimSpace(stringOr(target.Title, cc.Title)) == "" {
			return models.NewValidationError(field+".title", "title is required")
		}

		if cc.Status == models.PostStatusScheduled {
			scheduledAt := cc.ScheduledAt
			if target.ScheduledAt != nil {
				scheduledAt = target.ScheduledAt
			}
			if scheduledAt == nil || scheduledAt.IsZero() {
				return models.ErrInvalidSchedule
			}
		}
	}
	return nil
}

// rollback removes already-created members after a storage failure so a
// partially materialized group never survives.
func (s *crosspostService) rollback(ctx context.Context, created []*models.Post) {
	for _, post := range created {
		if err := s.pr.Remove(ctx, post.ID); err != nil {
			slog.Warn("crosspost rollback failed", "post_id", post.ID, "error", err)
		}
	}
}

func stringOr(override *string, fallback string) string {
	if override != nil {
		return *override
	}
	return fallback
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
