package transfer

import "time"

type CampaignCreation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectCreation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectCreated reports a created project plus whether the soft project
// limit was crossed. The limit never blocks creation.
type ProjectCreated struct {
	ID           string `json:"id"`
	SoftLimitHit bool   `json:"soft_limit_hit"`
}

type LaunchPostCreation struct {
	Platform string `json:"platform"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

type LaunchPostUpdate struct {
	Title      *string    `json:"title,omitempty"`
	URL        *string    `json:"url,omitempty"`
	Launched   *bool      `json:"launched,omitempty"`
	LaunchedAt *time.Time `json:"launched_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

type BlogDraftCreation struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type BlogDraftUpdate struct {
	Title *string   `json:"title,omitempty"`
	Body  *string   `json:"body,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}
