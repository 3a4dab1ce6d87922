package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

type ProjectService interface {
	Create(ctx context.Context, pc *transfer.ProjectCreation) (*transfer.ProjectCreated, error)
	ProjectInfo(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Remove(ctx context.Context, id string) error
}

type projectService struct {
	pr        repository.ProjectRepository
	softLimit int
}

func NewProjectService(pr repository.ProjectRepository, softLimit int) ProjectService {
	return &projectService{pr: pr, softLimit: softLimit}
}

// Create adds a project. The soft limit flags the result once the project
// count reaches the threshold, but never blocks creation.
func (s *projectService) Create(ctx context.Context, pc *transfer.ProjectCreation) (*transfer.ProjectCreated, error) {
	if pc == nil || strings.TrimSpace(pc.Name) == "" {
		return nil, models.NewValidationError("name", "project name is required")
	}

	id, err := s.pr.Create(ctx, &models.Project{Name: pc.Name, Description: pc.Description})
	if err != nil {
		return nil, err
	}

	created := &transfer.ProjectCreated{ID: id}
	if s.softLimit > 0 {
		count, err := s.pr.Count(ctx)
		if err != nil {
			slog.Warn("project count unavailable", "error", err)
		} else if count >= s.softLimit {
			created.SoftLimitHit = true
		}
	}
	return created, nil
}

func (s *projectService) ProjectInfo(ctx context.Context, id string) (*models.Project, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "project id is required")
	}
	return s.pr.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.pr.List(ctx)
}

func (s *projectService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("id", "project id is required")
	}
	return s.pr.Remove(ctx, id)
}
