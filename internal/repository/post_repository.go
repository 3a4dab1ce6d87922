package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error)
	List(ctx context.Context, filter *transfer.PostFilter) ([]*models.Post, error)
	Archive(ctx context.Context, id string) (*models.Post, error)
	Restore(ctx context.Context, id string) (*models.Post, error)
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, status, platform, content, scheduled_at, group_id, group_type, campaign_id, project_id, notes, posted_url, error_message, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, models.NewStorageError("create", err)
	}

	content, err := json.Marshal(post.Content)
	if err != nil {
		return nil, models.NewStorageError("create", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO posts (id, status, platform, content, scheduled_at, group_id, group_type, campaign_id, project_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`

	_, err = r.db.ExecContext(ctx, query,
		id, post.Status, post.Platform, content, nullTime(post.ScheduledAt),
		nullString(post.GroupID), nullString(post.GroupType),
		nullString(post.CampaignID), nullString(post.ProjectID),
		post.Notes, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("create", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *postRepository) Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error) {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Content != nil {
		content, err := json.Marshal(upd.Content)
		if err != nil {
			return nil, models.NewStorageError("update", err)
		}
		sets = append(sets, "content = "+arg(content))
	}
	if upd.Status != nil {
		sets = append(sets, "status = "+arg(*upd.Status))
	}
	if upd.ClearScheduledAt {
		sets = append(sets, "scheduled_at = NULL")
	} else if upd.ScheduledAt != nil {
		sets = append(sets, "scheduled_at = "+arg(*upd.ScheduledAt))
	}
	if upd.CampaignID != nil {
		sets = append(sets, "campaign_id = "+arg(*upd.CampaignID))
	}
	if upd.ProjectID != nil {
		sets = append(sets, "project_id = "+arg(*upd.ProjectID))
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = "+arg(*upd.Notes))
	}
	if upd.PostedURL != nil {
		sets = append(sets, "posted_url = "+arg(*upd.PostedURL))
	}
	if upd.ErrorMessage != nil {
		sets = append(sets, "error_message = "+arg(*upd.ErrorMessage))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = "+arg(time.Now().UTC()))
	query := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *postRepository) List(ctx context.Context, filter *transfer.PostFilter) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	conds := []string{}
	args := []any{}
	if filter != nil {
		if filter.Status != "" {
			args = append(args, filter.Status)
			conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
		}
		if filter.GroupID != "" {
			args = append(args, filter.GroupID)
			conds = append(conds, fmt.Sprintf("group_id = $%d", len(args)))
		}
		if filter.CampaignID != "" {
			args = append(args, filter.CampaignID)
			conds = append(conds, fmt.Sprintf("campaign_id = $%d", len(args)))
		}
		if filter.Platform != "" {
			args = append(args, filter.Platform)
			conds = append(conds, fmt.Sprintf("platform = $%d", len(args)))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Archive(ctx context.Context, id string) (*models.Post, error) {
	status := models.PostStatusArchived
	return r.Update(ctx, id, &transfer.PostUpdate{Status: &status})
}

func (r *postRepository) Restore(ctx context.Context, id string) (*models.Post, error) {
	status := models.PostStatusDraft
	return r.Update(ctx, id, &transfer.PostUpdate{Status: &status, ClearScheduledAt: true})
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return models.NewStorageError("remove", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var content []byte
	var scheduledAt sql.NullTime
	var groupID, groupType, campaignID, projectID, postedURL, errorMessage sql.NullString

	err := row.Scan(&post.ID, &post.Status, &post.Platform, &content, &scheduledAt,
		&groupID, &groupType, &campaignID, &projectID,
		&post.Notes, &postedURL, &errorMessage, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Info(err.Error())
		return nil, models.NewStorageError("get", err)
	}

	// Content documents written before the tagged-variant shape are upgraded
	// on read.
	post.Content, err = models.MigrateContent(content)
	if err != nil {
		return nil, models.NewStorageError("get", err)
	}

	if scheduledAt.Valid {
		t := scheduledAt.Time
		post.ScheduledAt = &t
	}
	post.GroupID = strPtr(groupID)
	post.GroupType = strPtr(groupType)
	post.CampaignID = strPtr(campaignID)
	post.ProjectID = strPtr(projectID)
	if postedURL.Valid {
		post.PostedURL = postedURL.String
	}
	if errorMessage.Valid {
		post.ErrorMessage = errorMessage.String
	}
	return &post, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func strPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
