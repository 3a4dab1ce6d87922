package models

import (
	"encoding/json"
	"fmt"
)

// legacyRedditContent is the pre-variant payload shape: reddit fields at the
// top level of the content document, with no platform tag.
type legacyRedditContent struct {
	Subreddit   string `json:"subreddit"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	URL         string `json:"url"`
	Flair       string `json:"flair"`
	LaunchedURL string `json:"launched_url"`
}

// MigrateContent decodes a persisted content document, upgrading the legacy
// untagged Reddit shape to the tagged variant. Already-tagged documents pass
// through unchanged, so applying it twice is a no-op.
func MigrateContent(raw []byte) (PostContent, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return PostContent{}, fmt.Errorf("invalid content document: %w", err)
	}

	_, hasTwitter := probe["twitter"]
	_, hasLinkedIn := probe["linkedin"]
	_, hasReddit := probe["reddit"]
	if hasTwitter || hasLinkedIn || hasReddit {
		var content PostContent
		if err := json.Unmarshal(raw, &content); err != nil {
			return PostContent{}, fmt.Errorf("invalid content document: %w", err)
		}
		return content, nil
	}

	if _, ok := probe["subreddit"]; ok {
		var legacy legacyRedditContent
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return PostContent{}, fmt.Errorf("invalid legacy content document: %w", err)
		}
		return PostContent{
			Reddit: &RedditContent{
				Subreddit:   legacy.Subreddit,
				Title:       legacy.Title,
				Body:        legacy.Body,
				URL:         legacy.URL,
				Flair:       legacy.Flair,
				LaunchedURL: legacy.LaunchedURL,
			},
		}, nil
	}

	return PostContent{}, fmt.Errorf("unrecognized content document shape")
}
