package service

import (
	"context"
	"strings"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

type CampaignService interface {
	Create(ctx context.Context, cc *transfer.CampaignCreation) (string, error)
	CampaignInfo(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context) ([]*models.Campaign, error)
	Remove(ctx context.Context, id string) error
}

type campaignService struct {
	cr repository.CampaignRepository
}

func NewCampaignService(cr repository.CampaignRepository) CampaignService {
	return &campaignService{cr: cr}
}

func (s *campaignService) Create(ctx context.Context, cc *transfer.CampaignCreation) (string, error) {
	if cc == nil || strings.TrimSpace(cc.Name) == "" {
		return "", models.NewValidationError("name", "campaign name is required")
	}
	return s.cr.Create(ctx, &models.Campaign{Name: cc.Name, Description: cc.Description})
}

func (s *campaignService) CampaignInfo(ctx context.Context, id string) (*models.Campaign, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "campaign id is required")
	}
	return s.cr.GetByID(ctx, id)
}

func (s *campaignService) List(ctx context.Context) ([]*models.Campaign, error) {
	return s.cr.List(ctx)
}

func (s *campaignService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("id", "campaign id is required")
	}
	return s.cr.Remove(ctx, id)
}
