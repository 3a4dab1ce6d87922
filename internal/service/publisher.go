package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/crossdeckhq/crossdeck/configs"
	"github.com/crossdeckhq/crossdeck/internal/models"
)

// Publisher sends one post to its platform and returns the live URL.
type Publisher interface {
	Publish(ctx context.Context, post *models.Post) (string, error)
}

type httpPublisher struct {
	cfg    config.Config
	client *http.Client
}

func NewHTTPPublisher(cfg config.Config) Publisher {
	return &httpPublisher{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *httpPublisher) Publish(ctx context.Context, post *models.Post) (string, error) {
	endpoint, token, payload, err := p.request(post)
	if err != nil {
		return "", err
	}
	if endpoint == "" {
		return "", fmt.Errorf("no publish endpoint configured for %s", post.Platform)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%s publish failed: status %d: %s", post.Platform, resp.StatusCode, msg)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s publish response unreadable: %w", post.Platform, err)
	}
	// some platforms return an empty body on success
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%s publish response malformed: %w", post.Platform, err)
	}
	return result.URL, nil
}

func (p *httpPublisher) request(post *models.Post) (endpoint, token string, payload any, err error) {
	switch post.Platform {
	case models.PlatformTwitter:
		if post.Content.Twitter == nil {
			return "", "", nil, fmt.Errorf("twitter post %s has no twitter payload", post.ID)
		}
		return p.cfg.TwitterAPIURL, p.cfg.TwitterToken, map[string]any{
			"text":       post.Content.Twitter.Text,
			"media_urls": post.Content.Twitter.MediaURLs,
		}, nil
	case models.PlatformLinkedIn:
		if post.Content.LinkedIn == nil {
			return "", "", nil, fmt.Errorf("linkedin post %s has no linkedin payload", post.ID)
		}
		return p.cfg.LinkedInAPIURL, p.cfg.LinkedInToken, map[string]any{
			"text":       post.Content.LinkedIn.Text,
			"media_urls": post.Content.LinkedIn.MediaURLs,
		}, nil
	case models.PlatformReddit:
		if post.Content.Reddit == nil {
			return "", "", nil, fmt.Errorf("reddit post %s has no reddit payload", post.ID)
		}
		return p.cfg.RedditAPIURL, p.cfg.RedditToken, map[string]any{
			"sr":    post.Content.Reddit.Subreddit,
			"title": post.Content.Reddit.Title,
			"text":  post.Content.Reddit.Body,
			"url":   post.Content.Reddit.URL,
			"flair": post.Content.Reddit.Flair,
		}, nil
	}
	return "", "", nil, fmt.Errorf("unknown platform %q", post.Platform)
}
