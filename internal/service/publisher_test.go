package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/crossdeckhq/crossdeck/configs"
	"github.com/crossdeckhq/crossdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twitterPost() *models.Post {
	return &models.Post{
		ID:       "p1",
		Status:   models.PostStatusScheduled,
		Platform: models.PlatformTwitter,
		Content:  models.PostContent{Twitter: &models.TwitterContent{Text: "hello"}},
	}
}

func newTwitterPublisher(endpoint string) Publisher {
	return NewHTTPPublisher(config.Config{TwitterAPIURL: endpoint, TwitterToken: "tok"})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns the platform url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Write([]byte(`{"url": "https://twitter.com/x/1"}`))
		}))
		defer srv.Close()

		url, err := newTwitterPublisher(srv.URL).Publish(ctx, twitterPost())
		require.NoError(t, err)
		assert.Equal(t, "https://twitter.com/x/1", url)
	})

	t.Run("an empty response body is success without a url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		url, err := newTwitterPublisher(srv.URL).Publish(ctx, twitterPost())
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("a malformed response body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>ok</html>`))
		}))
		defer srv.Close()

		_, err := newTwitterPublisher(srv.URL).Publish(ctx, twitterPost())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed")
	})

	t.Run("a non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTwitterPublisher(srv.URL).Publish(ctx, twitterPost())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("an unconfigured endpoint is an error", func(t *testing.T) {
		_, err := NewHTTPPublisher(config.Config{}).Publish(ctx, twitterPost())
		require.Error(t, err)
	})
}
