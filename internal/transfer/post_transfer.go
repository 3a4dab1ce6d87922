package transfer

import (
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
)

type PostCreation struct {
	Content    models.PostContent `json:"content"`
	CampaignID *string            `json:"campaign_id,omitempty"`
	ProjectID  *string            `json:"project_id,omitempty"`
	Notes      string             `json:"notes"`
}

// PostUpdate carries a partial update; nil fields are left untouched.
// ClearScheduledAt distinguishes "set to null" from "don't touch".
type PostUpdate struct {
	Content          *models.PostContent `json:"content,omitempty"`
	Status           *string             `json:"status,omitempty"`
	ScheduledAt      *time.Time          `json:"scheduled_at,omitempty"`
	ClearScheduledAt bool                `json:"clear_scheduled_at,omitempty"`
	CampaignID       *string             `json:"campaign_id,omitempty"`
	ProjectID        *string             `json:"project_id,omitempty"`
	Notes            *string             `json:"notes,omitempty"`
	PostedURL        *string             `json:"posted_url,omitempty"`
	ErrorMessage     *string             `json:"error_message,omitempty"`
}

type PostFilter struct {
	Status     string `json:"status,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`
	Platform   string `json:"platform,omitempty"`
}
