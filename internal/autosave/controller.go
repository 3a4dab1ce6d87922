// Package autosave drives repository saves from live edit state without
// user-initiated save clicks. One Session per open editor; saves for a
// session are debounced, deduplicated, and strictly serialized so a burst of
// edits on a brand-new post performs exactly one create followed by updates.
package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSaved   Status = "saved"
	StatusError   Status = "error"
)

// Snapshot is one observation of the edit state. PostStatus is empty for a
// post that has never been persisted.
type Snapshot struct {
	PostStatus  string             `json:"post_status,omitempty"`
	Content     models.PostContent `json:"content"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
	Notes       string             `json:"notes"`
}

// Equal is structural equality over the fields a save persists. The schedule
// is deliberately excluded: schedule changes go through the explicit schedule
// action and never through auto-save, so a schedule-only change must not
// trigger a save.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Notes != o.Notes || s.PostStatus != o.PostStatus {
		return false
	}
	return reflect.DeepEqual(s.Content, o.Content)
}

// SaveFunc persists one snapshot. An empty postID means the session has no
// record yet and the save must create one; otherwise it must update postID.
type SaveFunc func(ctx context.Context, postID string, snap Snapshot) (*models.Post, error)

// Controller owns every live auto-save session. In-flight state is held per
// session, never process-wide, so sessions cannot leak into each other.
type Controller struct {
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewController(debounce time.Duration) *Controller {
	return &Controller{
		debounce: debounce,
		sessions: make(map[string]*Session),
	}
}

// Attach registers a session. getSnapshot is called at debounce expiry to
// read the latest edit state; save performs the repository call.
func (c *Controller) Attach(sessionID string, getSnapshot func() Snapshot, save SaveFunc) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[sessionID]; ok {
		return nil, fmt.Errorf("session %s already attached", sessionID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:          sessionID,
		ctrl:        c,
		getSnapshot: getSnapshot,
		save:        save,
		ctx:         ctx,
		cancel:      cancel,
		status:      StatusIdle,
	}
	c.sessions[sessionID] = s
	return s, nil
}

// Session looks up a live session by id.
func (c *Controller) Session(sessionID string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[sessionID]
	return s, ok
}

func (c *Controller) remove(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}

// Session is one editor's auto-save loop.
type Session struct {
	id          string
	ctrl        *Controller
	getSnapshot func() Snapshot
	save        SaveFunc
	ctx         context.Context
	cancel      context.CancelFunc

	mu        sync.Mutex
	timer     *time.Timer
	status    Status
	postID    string
	lastSaved *Snapshot
	inFlight  bool
	rearm     bool
	detached  bool
}

// Notify records that an edit happened and resets the debounce window.
func (s *Session) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detached {
		return
	}
	s.status = StatusPending
	s.resetTimerLocked()
}

// Status reports the session's save state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PostID returns the persisted record's id, or "" before the first create.
func (s *Session) PostID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postID
}

// SeedPost binds the session to an existing record and primes the saved
// baseline with its persisted state, so saves update it instead of creating a
// new one and an unchanged first snapshot never triggers a redundant write.
// Only meaningful before the first save.
func (s *Session) SeedPost(postID string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.postID == "" {
		s.postID = postID
		saved := snap
		s.lastSaved = &saved
	}
}

// Detach tears the session down. The pending debounce timer is cancelled and
// any in-flight save has its context cancelled; nothing fires afterwards.
func (s *Session) Detach() {
	s.mu.Lock()
	s.detached = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.cancel()
	s.ctrl.remove(s.id)
}

func (s *Session) resetTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.ctrl.debounce, s.fire)
}

// fire runs when the edit state has been quiet for the debounce window.
func (s *Session) fire() {
	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return
	}
	if s.inFlight {
		// a save is still running; rerun once it completes so its result
		// can't be overwritten out of order
		s.rearm = true
		s.mu.Unlock()
		return
	}

	snap := s.getSnapshot()

	// auto-save only exists for drafts; scheduled and later statuses require
	// an explicit save action
	if snap.PostStatus != "" && snap.PostStatus != models.PostStatusDraft {
		s.status = StatusIdle
		s.mu.Unlock()
		return
	}

	if s.lastSaved != nil && snap.Equal(*s.lastSaved) {
		s.status = StatusSaved
		s.mu.Unlock()
		return
	}

	s.inFlight = true
	postID := s.postID
	ctx := s.ctx
	s.mu.Unlock()

	post, err := s.save(ctx, postID, snap)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		// swallowed: the next debounce cycle retries from the latest
		// snapshot, and lastSaved stays stale so the state remains dirty
		s.status = StatusError
		slog.Warn("auto-save failed", "session_id", s.id, "error", err)
		if !s.detached {
			s.resetTimerLocked()
		}
	} else {
		if s.postID == "" {
			// id captured under the same lock that gates the next save, so a
			// second create can never race this one
			s.postID = post.ID
		}
		saved := snap
		s.lastSaved = &saved
		s.status = StatusSaved
	}
	if s.rearm {
		s.rearm = false
		if !s.detached {
			s.resetTimerLocked()
		}
	}
	s.mu.Unlock()
}
