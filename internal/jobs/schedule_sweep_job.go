package jobs

import (
	"context"
	"log"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/queue"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
)

// Enqueuer submits one publish task. Satisfied by the asynq client wrapper in
// main; faked in tests.
type Enqueuer interface {
	Enqueue(payload queue.PublishPostPayload, delay time.Duration) error
}

// ScheduleSweepJob re-enqueues scheduled posts whose time has passed without
// a publish attempt, e.g. after Redis lost the delayed task. The worker skips
// posts that are no longer scheduled, so a duplicate enqueue is safe.
type ScheduleSweepJob struct {
	pr repository.PostRepository
	eq Enqueuer
}

func NewScheduleSweepJob(pr repository.PostRepository, eq Enqueuer) *ScheduleSweepJob {
	return &ScheduleSweepJob{pr: pr, eq: eq}
}

func (j *ScheduleSweepJob) Sweep() {
	ctx := context.Background()

	posts, err := j.pr.List(ctx, &transfer.PostFilter{Status: models.PostStatusScheduled})
	if err != nil {
		log.Printf("Sweep: listing scheduled posts failed: %v", err)
		return
	}

	now := time.Now()
	for _, post := range posts {
		if post.ScheduledAt == nil || post.ScheduledAt.After(now) {
			continue
		}
		if err := j.eq.Enqueue(queue.PublishPostPayload{PostID: post.ID}, 0); err != nil {
			log.Printf("Sweep: enqueue for post %s failed: %v", post.ID, err)
		}
	}
}
