package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type BlogDraftRepository interface {
	Create(ctx context.Context, draft *models.BlogDraft) (string, error)
	GetByID(ctx context.Context, id string) (*models.BlogDraft, error)
	Update(ctx context.Context, id string, upd *transfer.BlogDraftUpdate) (*models.BlogDraft, error)
	List(ctx context.Context) ([]*models.BlogDraft, error)
	Remove(ctx context.Context, id string) error
}

type blogDraftRepository struct {
	db *sql.DB
}

func NewBlogDraftRepository(db *sql.DB) BlogDraftRepository {
	return &blogDraftRepository{db: db}
}

func (r *blogDraftRepository) Create(ctx context.Context, draft *models.BlogDraft) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", models.NewStorageError("create", err)
	}

	query := `
		INSERT INTO blog_drafts (id, title, body, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	_, err = r.db.ExecContext(ctx, query, id, draft.Title, draft.Body, pq.Array(draft.Tags), time.Now().UTC())
	if err != nil {
		slog.Info(err.Error())
		return "", models.NewStorageError("create", err)
	}
	return id, nil
}

func (r *blogDraftRepository) GetByID(ctx context.Context, id string) (*models.BlogDraft, error) {
	query := `SELECT id, title, body, tags, created_at, updated_at FROM blog_drafts WHERE id = $1`
	return scanBlogDraft(r.db.QueryRowContext(ctx, query, id))
}

func (r *blogDraftRepository) Update(ctx context.Context, id string, upd *transfer.BlogDraftUpdate) (*models.BlogDraft, error) {
	draft, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		draft.Title = *upd.Title
	}
	if upd.Body != nil {
		draft.Body = *upd.Body
	}
	if upd.Tags != nil {
		draft.Tags = *upd.Tags
	}

	query := `UPDATE blog_drafts SET title = $1, body = $2, tags = $3, updated_at = $4 WHERE id = $5`
	_, err = r.db.ExecContext(ctx, query, draft.Title, draft.Body, pq.Array(draft.Tags), time.Now().UTC(), id)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("update", err)
	}
	return r.GetByID(ctx, id)
}

func (r *blogDraftRepository) List(ctx context.Context) ([]*models.BlogDraft, error) {
	query := `SELECT id, title, body, tags, created_at, updated_at FROM blog_drafts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var drafts []*models.BlogDraft
	for rows.Next() {
		draft, err := scanBlogDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

func (r *blogDraftRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_drafts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return models.NewStorageError("remove", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanBlogDraft(row rowScanner) (*models.BlogDraft, error) {
	var draft models.BlogDraft
	err := row.Scan(&draft.ID, &draft.Title, &draft.Body, pq.Array(&draft.Tags), &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Info(err.Error())
		return nil, models.NewStorageError("get", err)
	}
	return &draft, nil
}
