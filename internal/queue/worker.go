package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/hibiken/asynq"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost attempts a scheduled post's publish and records the outcome.
// It is idempotent: a post that is no longer scheduled (already published,
// unscheduled back to draft, archived) is skipped, so the sweep job
// re-enqueueing an already-handled post is harmless.
func (j *Queue) PublishPost(ctx context.Context, postID string) error {
	post, err := j.pr.GetByID(ctx, postID)
	if err != nil {
		if models.IsNotFound(err) {
			log.Printf("Post %s no longer exists, dropping publish task", postID)
			return nil
		}
		return err
	}

	if post.Status != models.PostStatusScheduled {
		log.Printf("Post %s is %s, skipping publish", postID, post.Status)
		return nil
	}

	postedURL, pubErr := j.pub.Publish(ctx, post)

	history := models.PublishHistory{
		PostID:   post.ID,
		Platform: post.Platform,
	}
	if pubErr != nil {
		history.ErrorMessage = pubErr.Error()
		log.Printf("Error publishing post %s to %s: %v", post.ID, post.Platform, pubErr)
	} else {
		history.PostedURL = postedURL
	}
	if _, err := j.ph.Create(ctx, &history); err != nil {
		log.Printf("Error saving publish history for post %s: %v", post.ID, err)
	}

	if pubErr != nil {
		if _, err := j.lc.MarkFailed(ctx, post.ID, pubErr); err != nil {
			return err
		}
		return nil
	}

	if _, err := j.lc.MarkPublished(ctx, post.ID, postedURL); err != nil {
		return err
	}
	return nil
}
