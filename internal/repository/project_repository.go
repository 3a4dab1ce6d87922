package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) (string, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Count(ctx context.Context) (int, error)
	Remove(ctx context.Context, id string) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", models.NewStorageError("create", err)
	}

	query := `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	_, err = r.db.ExecContext(ctx, query, id, project.Name, project.Description, time.Now().UTC())
	if err != nil {
		slog.Info(err.Error())
		return "", models.NewStorageError("create", err)
	}
	return id, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM projects WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Info(err.Error())
		return nil, models.NewStorageError("get", err)
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM projects ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			slog.Info(err.Error())
			return nil, models.NewStorageError("list", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, models.NewStorageError("count", err)
	}
	return count, nil
}

func (r *projectRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return models.NewStorageError("remove", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
