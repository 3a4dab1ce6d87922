package service

import (
	"context"
	"testing"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCrosspostFixture() (CrosspostService, repository.PostRepository) {
	repo := repository.NewMemoryPostRepository()
	return NewCrosspostService(repo), repo
}

func subreddits(names ...string) []transfer.SubredditTarget {
	targets := make([]transfer.SubredditTarget, 0, len(names))
	for _, name := range names {
		targets = append(targets, transfer.SubredditTarget{Subreddit: name})
	}
	return targets
}

func TestCreateCrosspost(t *testing.T) {
	ctx := context.Background()

	t.Run("multi-subreddit submission creates one grouped post per subreddit", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Launching my new product",
			Body:       "Check out what I built!",
			Subreddits: subreddits("startups", "SaaS", "sideproject"),
		})
		require.NoError(t, err)
		require.Len(t, posts, 3)

		groupID := posts[0].GroupID
		require.NotNil(t, groupID)
		seen := map[string]bool{}
		for _, post := range posts {
			assert.Equal(t, models.PostStatusDraft, post.Status)
			assert.Equal(t, models.PlatformReddit, post.Platform)
			require.NotNil(t, post.GroupID)
			assert.Equal(t, *groupID, *post.GroupID)
			require.NotNil(t, post.GroupType)
			assert.Equal(t, models.GroupTypeRedditCrosspost, *post.GroupType)
			require.NotNil(t, post.Content.Reddit)
			assert.Equal(t, "Launching my new product", post.Content.Reddit.Title)
			assert.Equal(t, "Check out what I built!", post.Content.Reddit.Body)
			seen[post.Content.Reddit.Subreddit] = true
		}
		assert.Equal(t, map[string]bool{"startups": true, "SaaS": true, "sideproject": true}, seen)
	})

	t.Run("members are created in input order", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Ordered",
			Subreddits: subreddits("first", "second", "third"),
		})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "first", posts[0].Content.Reddit.Subreddit)
		assert.Equal(t, "second", posts[1].Content.Reddit.Subreddit)
		assert.Equal(t, "third", posts[2].Content.Reddit.Subreddit)
	})

	t.Run("single subreddit creates one ungrouped post", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Launching my new product",
			Body:       "Check out what I built!",
			Subreddits: subreddits("webdev"),
		})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Nil(t, posts[0].GroupID)
		assert.Nil(t, posts[0].GroupType)
		assert.Equal(t, "webdev", posts[0].Content.Reddit.Subreddit)
	})

	t.Run("empty title creates zero posts", func(t *testing.T) {
		svc, repo := newCrosspostFixture()

		_, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "",
			Subreddits: subreddits("startups", "SaaS"),
		})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))

		stored, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("one empty subreddit name fails the whole batch", func(t *testing.T) {
		svc, repo := newCrosspostFixture()

		_, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Valid title",
			Subreddits: subreddits("startups", "", "SaaS"),
		})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))

		stored, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("duplicate subreddits are rejected", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		_, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Valid title",
			Subreddits: subreddits("startups", "startups"),
		})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})

	t.Run("per-subreddit overrides win over session defaults", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		defaultAt := time.Now().Add(time.Hour).Truncate(time.Second)
		overrideAt := defaultAt.Add(2 * time.Hour)
		overrideTitle := "Special title for golang"

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:       "Shared title",
			Status:      models.PostStatusScheduled,
			ScheduledAt: &defaultAt,
			Subreddits: []transfer.SubredditTarget{
				{Subreddit: "startups"},
				{Subreddit: "golang", Title: &overrideTitle, ScheduledAt: &overrideAt},
			},
		})
		require.NoError(t, err)
		require.Len(t, posts, 2)

		assert.Equal(t, "Shared title", posts[0].Content.Reddit.Title)
		require.NotNil(t, posts[0].ScheduledAt)
		assert.True(t, posts[0].ScheduledAt.Equal(defaultAt))

		assert.Equal(t, overrideTitle, posts[1].Content.Reddit.Title)
		require.NotNil(t, posts[1].ScheduledAt)
		assert.True(t, posts[1].ScheduledAt.Equal(overrideAt))
	})

	t.Run("scheduled submission without any date is rejected", func(t *testing.T) {
		svc, repo := newCrosspostFixture()

		_, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Valid title",
			Status:     models.PostStatusScheduled,
			Subreddits: subreddits("startups", "SaaS"),
		})
		require.ErrorIs(t, err, models.ErrInvalidSchedule)

		stored, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("mixed-platform session groups only the reddit members", func(t *testing.T) {
		svc, _ := newCrosspostFixture()

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Launch day",
			Subreddits: subreddits("startups", "SaaS"),
			Twitter:    &models.TwitterContent{Text: "We just launched!"},
		})
		require.NoError(t, err)
		require.Len(t, posts, 3)

		var twitterPost *models.Post
		for _, post := range posts {
			if post.Platform == models.PlatformTwitter {
				twitterPost = post
				continue
			}
			assert.NotNil(t, post.GroupID)
		}
		require.NotNil(t, twitterPost)
		assert.Nil(t, twitterPost.GroupID)
		assert.Nil(t, twitterPost.GroupType)
	})

	t.Run("editing one member's schedule leaves siblings untouched", func(t *testing.T) {
		svc, repo := newCrosspostFixture()
		lc := NewLifecycleService(repo)

		posts, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Independent members",
			Subreddits: subreddits("startups", "SaaS"),
		})
		require.NoError(t, err)
		require.Len(t, posts, 2)

		at := time.Now().Add(time.Hour)
		_, err = lc.Schedule(ctx, posts[0].ID, at)
		require.NoError(t, err)

		sibling, err := repo.GetByID(ctx, posts[1].ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, sibling.Status)
		assert.Nil(t, sibling.ScheduledAt)

		edited, err := repo.GetByID(ctx, posts[0].ID)
		require.NoError(t, err)
		require.NotNil(t, edited.GroupID)
		require.NotNil(t, sibling.GroupID)
		assert.Equal(t, *edited.GroupID, *sibling.GroupID, "group link survives member edits")
	})

	t.Run("group filter never returns single-subreddit posts", func(t *testing.T) {
		svc, repo := newCrosspostFixture()

		_, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Solo",
			Subreddits: subreddits("webdev"),
		})
		require.NoError(t, err)

		grouped, err := svc.CreateCrosspost(ctx, &transfer.CrosspostCreation{
			Title:      "Grouped",
			Subreddits: subreddits("startups", "SaaS"),
		})
		require.NoError(t, err)

		members, err := repo.List(ctx, &transfer.PostFilter{GroupID: *grouped[0].GroupID})
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})
}
