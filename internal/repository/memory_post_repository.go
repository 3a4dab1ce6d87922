package repository

import (
	"context"
	"sync"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// memoryPostRepository is an in-memory PostRepository used by tests and by
// local development without Postgres. Insertion order is preserved for List.
type memoryPostRepository struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	order []string
}

func NewMemoryPostRepository() PostRepository {
	return &memoryPostRepository{posts: make(map[string]*models.Post)}
}

func (r *memoryPostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, models.NewStorageError("create", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePost(post)
	stored.ID = id
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.posts[id] = stored
	r.order = append(r.order, id)
	return clonePost(stored), nil
}

func (r *memoryPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return clonePost(post), nil
}

func (r *memoryPostRepository) Update(ctx context.Context, id string, upd *transfer.PostUpdate) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.Status != nil {
		post.Status = *upd.Status
	}
	if upd.ClearScheduledAt {
		post.ScheduledAt = nil
	} else if upd.ScheduledAt != nil {
		t := *upd.ScheduledAt
		post.ScheduledAt = &t
	}
	if upd.CampaignID != nil {
		v := *upd.CampaignID
		post.CampaignID = &v
	}
	if upd.ProjectID != nil {
		v := *upd.ProjectID
		post.ProjectID = &v
	}
	if upd.Notes != nil {
		post.Notes = *upd.Notes
	}
	if upd.PostedURL != nil {
		post.PostedURL = *upd.PostedURL
	}
	if upd.ErrorMessage != nil {
		post.ErrorMessage = *upd.ErrorMessage
	}
	post.UpdatedAt = time.Now().UTC()

	return clonePost(post), nil
}

func (r *memoryPostRepository) List(ctx context.Context, filter *transfer.PostFilter) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var posts []*models.Post
	for _, id := range r.order {
		post, ok := r.posts[id]
		if !ok {
			continue
		}
		if filter != nil {
			if filter.Status != "" && post.Status != filter.Status {
				continue
			}
			if filter.GroupID != "" && (post.GroupID == nil || *post.GroupID != filter.GroupID) {
				continue
			}
			if filter.CampaignID != "" && (post.CampaignID == nil || *post.CampaignID != filter.CampaignID) {
				continue
			}
			if filter.Platform != "" && post.Platform != filter.Platform {
				continue
			}
		}
		posts = append(posts, clonePost(post))
	}
	return posts, nil
}

func (r *memoryPostRepository) Archive(ctx context.Context, id string) (*models.Post, error) {
	status := models.PostStatusArchived
	return r.Update(ctx, id, &transfer.PostUpdate{Status: &status})
}

func (r *memoryPostRepository) Restore(ctx context.Context, id string) (*models.Post, error) {
	status := models.PostStatusDraft
	return r.Update(ctx, id, &transfer.PostUpdate{Status: &status, ClearScheduledAt: true})
}

func (r *memoryPostRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	if p.ScheduledAt != nil {
		t := *p.ScheduledAt
		c.ScheduledAt = &t
	}
	c.GroupID = cloneStr(p.GroupID)
	c.GroupType = cloneStr(p.GroupType)
	c.CampaignID = cloneStr(p.CampaignID)
	c.ProjectID = cloneStr(p.ProjectID)
	c.Content = cloneContent(p.Content)
	return &c
}

func cloneContent(c models.PostContent) models.PostContent {
	out := models.PostContent{}
	if c.Twitter != nil {
		tw := *c.Twitter
		tw.MediaURLs = append([]string(nil), c.Twitter.MediaURLs...)
		out.Twitter = &tw
	}
	if c.LinkedIn != nil {
		li := *c.LinkedIn
		li.MediaURLs = append([]string(nil), c.LinkedIn.MediaURLs...)
		out.LinkedIn = &li
	}
	if c.Reddit != nil {
		rd := *c.Reddit
		out.Reddit = &rd
	}
	return out
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
