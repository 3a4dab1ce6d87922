package service

import (
	"context"
	"strings"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

type LaunchPostService interface {
	Create(ctx context.Context, lc *transfer.LaunchPostCreation) (string, error)
	LaunchInfo(ctx context.Context, id string) (*models.LaunchPost, error)
	Update(ctx context.Context, id string, upd *transfer.LaunchPostUpdate) (*models.LaunchPost, error)
	List(ctx context.Context) ([]*models.LaunchPost, error)
	Remove(ctx context.Context, id string) error
}

type launchPostService struct {
	lr repository.LaunchPostRepository
}

func NewLaunchPostService(lr repository.LaunchPostRepository) LaunchPostService {
	return &launchPostService{lr: lr}
}

func (s *launchPostService) Create(ctx context.Context, lc *transfer.LaunchPostCreation) (string, error) {
	if lc == nil {
		return "", models.NewValidationError("launch", "request body is required")
	}
	if strings.TrimSpace(lc.Platform) == "" {
		return "", models.NewValidationError("platform", "launch platform is required")
	}
	if strings.TrimSpace(lc.Title) == "" {
		return "", models.NewValidationError("title", "title is required")
	}

	return s.lr.Create(ctx, &models.LaunchPost{
		Platform: lc.Platform,
		Title:    lc.Title,
		URL:      lc.URL,
		Notes:    lc.Notes,
	})
}

func (s *launchPostService) LaunchInfo(ctx context.Context, id string) (*models.LaunchPost, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "launch id is required")
	}
	return s.lr.GetByID(ctx, id)
}

func (s *launchPostService) Update(ctx context.Context, id string, upd *transfer.LaunchPostUpdate) (*models.LaunchPost, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "launch id is required")
	}
	return s.lr.Update(ctx, id, upd)
}

func (s *launchPostService) List(ctx context.Context) ([]*models.LaunchPost, error) {
	return s.lr.List(ctx)
}

func (s *launchPostService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("id", "launch id is required")
	}
	return s.lr.Remove(ctx, id)
}
