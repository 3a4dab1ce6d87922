package models

import "time"

type Post struct {
	ID           string      `db:"id" json:"id"`
	Status       string      `db:"status" json:"status"` // draft, scheduled, published, failed, archived
	Platform     string      `db:"platform" json:"platform"`
	Content      PostContent `db:"content" json:"content"`
	ScheduledAt  *time.Time  `db:"scheduled_at" json:"scheduled_at,omitempty"`
	GroupID      *string     `db:"group_id" json:"group_id,omitempty"`
	GroupType    *string     `db:"group_type" json:"group_type,omitempty"`
	CampaignID   *string     `db:"campaign_id" json:"campaign_id,omitempty"`
	ProjectID    *string     `db:"project_id" json:"project_id,omitempty"`
	Notes        string      `db:"notes" json:"notes"`
	PostedURL    string      `db:"posted_url" json:"posted_url,omitempty"`
	ErrorMessage string      `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// PostContent is a tagged variant: exactly one platform payload is set and
// Post.Platform is the discriminant.
type PostContent struct {
	Twitter  *TwitterContent  `json:"twitter,omitempty"`
	LinkedIn *LinkedInContent `json:"linkedin,omitempty"`
	Reddit   *RedditContent   `json:"reddit,omitempty"`
}

type TwitterContent struct {
	Text      string   `json:"text"`
	MediaURLs []string `json:"media_urls,omitempty"`
}

type LinkedInContent struct {
	Text      string   `json:"text"`
	MediaURLs []string `json:"media_urls,omitempty"`
}

type RedditContent struct {
	Subreddit   string `json:"subreddit"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	URL         string `json:"url,omitempty"`
	Flair       string `json:"flair,omitempty"`
	LaunchedURL string `json:"launched_url,omitempty"`
}

// Platform reports the platform implied by which payload is set.
func (c PostContent) Platform() string {
	switch {
	case c.Twitter != nil:
		return PlatformTwitter
	case c.LinkedIn != nil:
		return PlatformLinkedIn
	case c.Reddit != nil:
		return PlatformReddit
	}
	return ""
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
	PostStatusArchived  = "archived"
)

const (
	PlatformTwitter  = "twitter"
	PlatformLinkedIn = "linkedin"
	PlatformReddit   = "reddit"
)

const GroupTypeRedditCrosspost = "reddit-crosspost"

type PublishHistory struct {
	ID           int64     `db:"id"`
	PostID       string    `db:"post_id"`
	Platform     string    `db:"platform"`
	PostedURL    string    `db:"posted_url"`
	ErrorMessage string    `db:"error_message"`
	AttemptedAt  time.Time `db:"attempted_at"`
}
