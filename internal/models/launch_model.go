package models

import "time"

// LaunchPost tracks a product launch on platforms like Hacker News or
// Product Hunt. Launches live outside the Post lifecycle: there is no
// scheduling or publishing, only manual status tracking.
type LaunchPost struct {
	ID         string     `db:"id" json:"id"`
	Platform   string     `db:"platform" json:"platform"` // hackernews, producthunt, indiehackers, ...
	Title      string     `db:"title" json:"title"`
	URL        string     `db:"url" json:"url"`
	Launched   bool       `db:"launched" json:"launched"`
	LaunchedAt *time.Time `db:"launched_at" json:"launched_at,omitempty"`
	Notes      string     `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type BlogDraft struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Tags      []string  `db:"tags" json:"tags"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
