package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/crossdeckhq/crossdeck/internal/autosave"
	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerDebounce = 20 * time.Millisecond

func newAutosaveApp() (*fiber.App, repository.PostRepository) {
	pr := repository.NewMemoryPostRepository()
	h := NewAutoSaveHandler(autosave.NewController(handlerDebounce), pr)

	app := fiber.New()
	app.Post("/autosave/attach", h.Attach)
	app.Post("/autosave/:session_id/snapshot", h.PushSnapshot)
	app.Get("/autosave/:session_id", h.SessionStatus)
	app.Post("/autosave/:session_id/detach", h.Detach)
	return app, pr
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAutoSaveHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("a snapshot without a status cannot edit a scheduled post", func(t *testing.T) {
		app, pr := newAutosaveApp()

		at := time.Now().Add(time.Hour)
		post, err := pr.Create(ctx, &models.Post{
			Status:      models.PostStatusScheduled,
			Platform:    models.PlatformTwitter,
			Content:     models.PostContent{Twitter: &models.TwitterContent{Text: "scheduled text"}},
			ScheduledAt: &at,
		})
		require.NoError(t, err)

		resp := postJSON(t, app, "/autosave/attach", fiber.Map{"session_id": "s1", "post_id": post.ID})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// the pushed snapshot carries content only; the handler fills in the
		// server-known status, so the draft-only gate still holds
		resp = postJSON(t, app, "/autosave/s1/snapshot", fiber.Map{
			"content": fiber.Map{"twitter": fiber.Map{"text": "edited behind the gate"}},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		time.Sleep(4 * handlerDebounce)

		stored, err := pr.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, stored.Status)
		assert.Equal(t, "scheduled text", stored.Content.Twitter.Text)
	})

	t.Run("an unchanged snapshot after attach does not rewrite the post", func(t *testing.T) {
		app, pr := newAutosaveApp()

		post, err := pr.Create(ctx, &models.Post{
			Status:   models.PostStatusDraft,
			Platform: models.PlatformTwitter,
			Content:  models.PostContent{Twitter: &models.TwitterContent{Text: "hello"}},
			Notes:    "n",
		})
		require.NoError(t, err)

		resp := postJSON(t, app, "/autosave/attach", fiber.Map{"session_id": "s2", "post_id": post.ID})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = postJSON(t, app, "/autosave/s2/snapshot", fiber.Map{
			"content": fiber.Map{"twitter": fiber.Map{"text": "hello"}},
			"notes":   "n",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		time.Sleep(4 * handlerDebounce)

		stored, err := pr.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("rapid pushes on a new session create one draft", func(t *testing.T) {
		app, pr := newAutosaveApp()

		resp := postJSON(t, app, "/autosave/attach", fiber.Map{"session_id": "s3"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		for _, text := range []string{"A", "AB"} {
			resp = postJSON(t, app, "/autosave/s3/snapshot", fiber.Map{
				"content": fiber.Map{"twitter": fiber.Map{"text": text}},
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		time.Sleep(4 * handlerDebounce)

		posts, err := pr.List(ctx, &transfer.PostFilter{})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, models.PostStatusDraft, posts[0].Status)
		assert.Equal(t, "AB", posts[0].Content.Twitter.Text)

		req, err := http.NewRequest(http.MethodGet, "/autosave/s3", nil)
		require.NoError(t, err)
		statusResp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, statusResp.StatusCode)

		var body struct {
			Status string `json:"status"`
			PostID string `json:"post_id"`
		}
		require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&body))
		assert.Equal(t, string(autosave.StatusSaved), body.Status)
		assert.Equal(t, posts[0].ID, body.PostID)
	})
}
