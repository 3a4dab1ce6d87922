package queue

import (
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/service"
)

type Queue struct {
	pr  repository.PostRepository
	ph  repository.PublishHistoryRepository
	lc  service.LifecycleService
	pub service.Publisher
}

func NewQueue(
	pr repository.PostRepository,
	ph repository.PublishHistoryRepository,
	lc service.LifecycleService,
	pub service.Publisher) *Queue {
	return &Queue{
		pr:  pr,
		ph:  ph,
		lc:  lc,
		pub: pub,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
