package transfer

import (
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
)

// CrosspostCreation is one Reddit authoring session: shared fields applied to
// every target subreddit, with optional per-subreddit overrides. Twitter and
// LinkedIn payloads attached to the same session become separate ungrouped
// posts.
type CrosspostCreation struct {
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Flair       string            `json:"flair,omitempty"`
	URL         string            `json:"url,omitempty"`
	Subreddits  []SubredditTarget `json:"subreddits"`
	Status      string            `json:"status"` // draft or scheduled
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
	CampaignID  *string           `json:"campaign_id,omitempty"`
	ProjectID   *string           `json:"project_id,omitempty"`
	Notes       string            `json:"notes"`

	Twitter  *models.TwitterContent  `json:"twitter,omitempty"`
	LinkedIn *models.LinkedInContent `json:"linkedin,omitempty"`
}

// SubredditTarget names one target subreddit. Nil override fields inherit the
// session-level value.
type SubredditTarget struct {
	Subreddit   string     `json:"subreddit"`
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	Flair       *string    `json:"flair,omitempty"`
	URL         *string    `json:"url,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}
