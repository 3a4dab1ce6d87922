package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
)

type PublishHistoryRepository interface {
	Create(ctx context.Context, history *models.PublishHistory) (int64, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.PublishHistory, error)
}

type publishHistoryRepository struct {
	db *sql.DB
}

func NewPublishHistoryRepository(db *sql.DB) PublishHistoryRepository {
	return &publishHistoryRepository{db: db}
}

func (r *publishHistoryRepository) Create(ctx context.Context, history *models.PublishHistory) (int64, error) {
	query := `
		INSERT INTO publish_history (post_id, platform, posted_url, error_message, attempted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, history.PostID, history.Platform,
		history.PostedURL, history.ErrorMessage, time.Now().UTC()).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, models.NewStorageError("create", err)
	}
	return id, nil
}

func (r *publishHistoryRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PublishHistory, error) {
	query := `SELECT id, post_id, platform, posted_url, error_message, attempted_at FROM publish_history WHERE post_id = $1 ORDER BY attempted_at`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var histories []*models.PublishHistory
	for rows.Next() {
		var h models.PublishHistory
		err := rows.Scan(&h.ID, &h.PostID, &h.Platform, &h.PostedURL, &h.ErrorMessage, &h.AttemptedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, models.NewStorageError("list", err)
		}
		histories = append(histories, &h)
	}
	return histories, rows.Err()
}
