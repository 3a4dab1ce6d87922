package service

import (
	"context"
	"strings"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

type BlogDraftService interface {
	Create(ctx context.Context, bc *transfer.BlogDraftCreation) (string, error)
	DraftInfo(ctx context.Context, id string) (*models.BlogDraft, error)
	Update(ctx context.Context, id string, upd *transfer.BlogDraftUpdate) (*models.BlogDraft, error)
	List(ctx context.Context) ([]*models.BlogDraft, error)
	Remove(ctx context.Context, id string) error
}

type blogDraftService struct {
	br repository.BlogDraftRepository
}

func NewBlogDraftService(br repository.BlogDraftRepository) BlogDraftService {
	return &blogDraftService{br: br}
}

func (s *blogDraftService) Create(ctx context.Context, bc *transfer.BlogDraftCreation) (string, error) {
	if bc == nil || strings.TrimSpace(bc.Title) == "" {
		return "", models.NewValidationError("title", "draft title is required")
	}
	return s.br.Create(ctx, &models.BlogDraft{Title: bc.Title, Body: bc.Body, Tags: bc.Tags})
}

func (s *blogDraftService) DraftInfo(ctx context.Context, id string) (*models.BlogDraft, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "draft id is required")
	}
	return s.br.GetByID(ctx, id)
}

func (s *blogDraftService) Update(ctx context.Context, id string, upd *transfer.BlogDraftUpdate) (*models.BlogDraft, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "draft id is required")
	}
	return s.br.Update(ctx, id, upd)
}

func (s *blogDraftService) List(ctx context.Context) ([]*models.BlogDraft, error) {
	return s.br.List(ctx)
}

func (s *blogDraftService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("id", "draft id is required")
	}
	return s.br.Remove(ctx, id)
}
