package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) (string, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context) ([]*models.Campaign, error)
	Remove(ctx context.Context, id string) error
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", models.NewStorageError("create", err)
	}

	query := `
		INSERT INTO campaigns (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	_, err = r.db.ExecContext(ctx, query, id, campaign.Name, campaign.Description, time.Now().UTC())
	if err != nil {
		slog.Info(err.Error())
		return "", models.NewStorageError("create", err)
	}
	return id, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM campaigns WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Info(err.Error())
		return nil, models.NewStorageError("get", err)
	}
	return &c, nil
}

func (r *campaignRepository) List(ctx context.Context) ([]*models.Campaign, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM campaigns ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, models.NewStorageError("list", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Info(err.Error())
			return nil, models.NewStorageError("list", err)
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return models.NewStorageError("remove", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
