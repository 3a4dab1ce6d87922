package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type LaunchPostRepository interface {
	Create(ctx context.Context, launch *models.LaunchPost) (string, error)
	GetByID(ctx context.Context, id string) (*models.LaunchPost, error)
	Update(ctx context.Context, id string, upd *transfer.LaunchPostUpdate) (*models.LaunchPost, error)
	List(ctx context.Context) ([]*models.LaunchPost, error)
	Remove(ctx context.Context, id string) error
}

type launchPostRepository struct {
	db *sql.DB
}

func NewLaunchPostRepository(db *sql.DB) LaunchPostRepository {
	return &launchPostRepository{db: db}
}

func (r *launchPostRepository) Create(ctx context.Context, launch *models.LaunchPost) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", models.NewStorageError("create", err)
	}

	query := `
		INSERT INTO launch_posts (id, platform, title, url, launched, launched_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	_, err = r.db.ExecContext(ctx, query, id, launch.Platform, launch.Title, launch.URL,
		launch.Launched, nullTime(launch.LaunchedAt), launch.Notes, time.Now().UTC())
	if err != nil {
		slog.Info(err.Error())
		return "", models.NewStorageError("create", err)
	}
	return id, nil
}

func (r *launchPostRepository) GetByID(ctx context.Context, id string) (*models.LaunchPost, error) {
	query := `SELECT id, platform, title, url, launched, launched_at, notes, created_at, updated_at FROM launch_posts WHERE id = $1`
	return scanLaunchPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *launchPostRepository) Update(ctx context.Context, id string, upd *transfer.LaunchPostUpdate) (*models.LaunchPost, error) {
	launch, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		launch.Title = *upd.Title
	}
	if upd.URL != nil {
		launch.URL = *upd.URL
	}
	if upd.Launched != nil {
		launch.Launched = *upd.Launched
	}
	if upd.LaunchedAt != nil {
		t := *upd.LaunchedAt
		launch.LaunchedAt = &t
	}
	if upd.Notes != nil {
		launch.Notes = *upd.Notes
	}

	query := `
		UPDATE launch_posts
		SET title = $1, url = $2, launched = $3, launched_at = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`
	_, err = r.db.ExecContext(ctx, query, launch.Title, launch.URL, launch.Launched,
		nullTime(launch.LaunchedAt), launch.Notes, time.Now().UTC(), id)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("update", err)
	}
	return r.GetByID(ctx, id)
}

func (r *launchPostRepository) List(ctx context.Context) ([]*models.LaunchPost, error) {
	query := `SELECT id, platform, title, url, launched, launched_at, notes, created_at, updated_at FROM launch_posts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var launches []*models.LaunchPost
	for rows.Next() {
		launch, err := scanLaunchPost(rows)
		if err != nil {
			return nil, err
		}
		launches = append(launches, launch)
	}
	return launches, rows.Err()
}

func (r *launchPostRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM launch_posts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return models.NewStorageError("remove", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanLaunchPost(row rowScanner) (*models.LaunchPost, error) {
	var launch models.LaunchPost
	var launchedAt sql.NullTime

	err := row.Scan(&launch.ID, &launch.Platform, &launch.Title, &launch.URL,
		&launch.Launched, &launchedAt, &launch.Notes, &launch.CreatedAt, &launch.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Info(err.Error())
		return nil, models.NewStorageError("get", err)
	}
	if launchedAt.Valid {
		t := launchedAt.Time
		launch.LaunchedAt = &t
	}
	return &launch, nil
}
