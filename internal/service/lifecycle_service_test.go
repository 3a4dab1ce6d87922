package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLifecycleFixture(t *testing.T) (LifecycleService, repository.PostRepository, *models.Post) {
	t.Helper()
	repo := repository.NewMemoryPostRepository()
	post, err := repo.Create(context.Background(), &models.Post{
		Status:   models.PostStatusDraft,
		Platform: models.PlatformTwitter,
		Content:  models.PostContent{Twitter: &models.TwitterContent{Text: "hello"}},
	})
	require.NoError(t, err)
	return NewLifecycleService(repo), repo, post
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.PostStatusDraft, models.PostStatusScheduled))
	assert.True(t, CanTransition(models.PostStatusScheduled, models.PostStatusScheduled))
	assert.True(t, CanTransition(models.PostStatusScheduled, models.PostStatusFailed))
	assert.True(t, CanTransition(models.PostStatusPublished, models.PostStatusArchived))
	assert.True(t, CanTransition(models.PostStatusArchived, models.PostStatusDraft))

	assert.False(t, CanTransition(models.PostStatusDraft, models.PostStatusFailed))
	assert.False(t, CanTransition(models.PostStatusPublished, models.PostStatusScheduled))
	assert.False(t, CanTransition(models.PostStatusArchived, models.PostStatusScheduled))
	assert.False(t, CanTransition(models.PostStatusArchived, models.PostStatusPublished))
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("draft becomes scheduled with the given instant", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		at := time.Now().Add(time.Hour)
		updated, err := lc.Schedule(ctx, post.ID, at)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, updated.Status)
		require.NotNil(t, updated.ScheduledAt)
		assert.True(t, updated.ScheduledAt.Equal(at))
	})

	t.Run("reschedule replaces the schedule", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		first := time.Now().Add(time.Hour)
		_, err := lc.Schedule(ctx, post.ID, first)
		require.NoError(t, err)

		second := first.Add(time.Hour)
		updated, err := lc.Schedule(ctx, post.ID, second)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, updated.Status)
		assert.True(t, updated.ScheduledAt.Equal(second))
	})

	t.Run("scheduling without a date mutates nothing", func(t *testing.T) {
		lc, repo, post := newLifecycleFixture(t)

		_, err := lc.Schedule(ctx, post.ID, time.Time{})
		require.ErrorIs(t, err, models.ErrInvalidSchedule)

		stored, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, stored.Status)
		assert.Nil(t, stored.ScheduledAt)
		assert.Equal(t, post.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("scheduling a published post is rejected", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.MarkPublished(ctx, post.ID, "https://twitter.com/x/1")
		require.NoError(t, err)

		_, err = lc.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
		require.ErrorIs(t, err, models.ErrInvalidState)
	})

	t.Run("unknown post id reports not found", func(t *testing.T) {
		lc, _, _ := newLifecycleFixture(t)
		_, err := lc.Schedule(ctx, "missing", time.Now().Add(time.Hour))
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestUnschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled reverts to draft with schedule cleared", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		updated, err := lc.Unschedule(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, updated.Status)
		assert.Nil(t, updated.ScheduledAt)
	})

	t.Run("clearing an unscheduled draft is a no-op", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		updated, err := lc.Unschedule(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, updated.Status)
		assert.Equal(t, post.UpdatedAt, updated.UpdatedAt)
	})
}

func TestPublishTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled publish success records the posted url", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		at := time.Now().Add(-time.Minute)
		_, err := lc.Schedule(ctx, post.ID, at)
		require.NoError(t, err)

		updated, err := lc.MarkPublished(ctx, post.ID, "https://twitter.com/x/1")
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, updated.Status)
		assert.Equal(t, "https://twitter.com/x/1", updated.PostedURL)
		require.NotNil(t, updated.ScheduledAt)
		assert.True(t, updated.ScheduledAt.Equal(at), "send time is preserved")
	})

	t.Run("publishing a draft stamps the send time", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		updated, err := lc.MarkPublished(ctx, post.ID, "https://twitter.com/x/2")
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, updated.Status)
		assert.NotNil(t, updated.ScheduledAt)
	})

	t.Run("publish failure records the error", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Schedule(ctx, post.ID, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		updated, err := lc.MarkFailed(ctx, post.ID, errors.New("rate limited"))
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusFailed, updated.Status)
		assert.Equal(t, "rate limited", updated.ErrorMessage)
	})

	t.Run("a draft cannot fail", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.MarkFailed(ctx, post.ID, errors.New("boom"))
		require.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestArchiveRestoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("archive requires confirmation", func(t *testing.T) {
		lc, repo, post := newLifecycleFixture(t)

		_, err := lc.Archive(ctx, post.ID, false)
		require.ErrorIs(t, err, models.ErrConfirmationRequired)

		stored, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, stored.Status)
	})

	t.Run("every live status can be archived", func(t *testing.T) {
		for _, status := range []string{
			models.PostStatusDraft,
			models.PostStatusScheduled,
			models.PostStatusPublished,
			models.PostStatusFailed,
		} {
			lc, repo, post := newLifecycleFixture(t)
			forceStatus(t, repo, post.ID, status)

			updated, err := lc.Archive(ctx, post.ID, true)
			require.NoError(t, err, "archiving from %s", status)
			assert.Equal(t, models.PostStatusArchived, updated.Status)
		}
	})

	t.Run("archiving an archived post is rejected", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Archive(ctx, post.ID, true)
		require.NoError(t, err)

		_, err = lc.Archive(ctx, post.ID, true)
		require.ErrorIs(t, err, models.ErrInvalidState)
	})

	t.Run("restore always lands in draft with schedule cleared", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Schedule(ctx, post.ID, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		_, err = lc.MarkPublished(ctx, post.ID, "https://twitter.com/x/3")
		require.NoError(t, err)
		_, err = lc.Archive(ctx, post.ID, true)
		require.NoError(t, err)

		restored, err := lc.Restore(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, restored.Status, "no path back to published")
		assert.Nil(t, restored.ScheduledAt)
	})

	t.Run("restore of a live post is rejected", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Restore(ctx, post.ID)
		require.ErrorIs(t, err, models.ErrInvalidState)
	})

	t.Run("delete requires confirmation and archived status", func(t *testing.T) {
		lc, repo, post := newLifecycleFixture(t)

		err := lc.Delete(ctx, post.ID, true)
		require.ErrorIs(t, err, models.ErrInvalidState)

		_, err = lc.Archive(ctx, post.ID, true)
		require.NoError(t, err)

		err = lc.Delete(ctx, post.ID, false)
		require.ErrorIs(t, err, models.ErrConfirmationRequired)

		err = lc.Delete(ctx, post.ID, true)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, post.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("operations on a deleted post report not found", func(t *testing.T) {
		lc, _, post := newLifecycleFixture(t)

		_, err := lc.Archive(ctx, post.ID, true)
		require.NoError(t, err)
		require.NoError(t, lc.Delete(ctx, post.ID, true))

		_, err = lc.Restore(ctx, post.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
		err = lc.Delete(ctx, post.ID, true)
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func forceStatus(t *testing.T, repo repository.PostRepository, postID, status string) {
	t.Helper()
	lc := NewLifecycleService(repo)
	ctx := context.Background()

	var err error
	switch status {
	case models.PostStatusDraft:
	case models.PostStatusScheduled:
		_, err = lc.Schedule(ctx, postID, time.Now().Add(time.Hour))
	case models.PostStatusPublished:
		_, err = lc.MarkPublished(ctx, postID, "https://example.com/post")
	case models.PostStatusFailed:
		_, err = lc.Schedule(ctx, postID, time.Now().Add(time.Hour))
		if err == nil {
			_, err = lc.MarkFailed(ctx, postID, errors.New("publish error"))
		}
	}
	require.NoError(t, err)
}
