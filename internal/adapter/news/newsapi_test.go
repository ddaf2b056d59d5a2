package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

func TestReady_MissingKey(t *testing.T) {
	client := NewNewsAPI("", "", time.Second)

	assert.ErrorIs(t, client.Ready(), domain.ErrNotConfigured)
}

func TestSearch_MissingKeyFailsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewNewsAPI("", server.URL, time.Second)
	_, err := client.Search(context.Background(), "Bitcoin", 5)

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.False(t, called)
}

func TestSearch_ParsesArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "Bitcoin", r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title":"ETF inflows hit record","url":"https://news.example/etf","publishedAt":"2026-08-20T12:00:00Z","source":{"name":"Example Wire"}},
				{"title":"No source article","url":"https://news.example/other","publishedAt":"2026-08-19T08:30:00Z","source":{}}
			]
		}`))
	}))
	defer server.Close()

	client := NewNewsAPI("test-key", server.URL, time.Second)
	articles, err := client.Search(context.Background(), "Bitcoin", 5)

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "ETF inflows hit record", articles[0].Title)
	assert.Equal(t, "Example Wire", articles[0].Source)
	assert.Equal(t, "Unknown", articles[1].Source)
	assert.Equal(t, time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC), articles[0].PublishedAt)
}

func TestSearch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","message":"apiKey invalid"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewNewsAPI("bad-key", server.URL, time.Second)
	_, err := client.Search(context.Background(), "Bitcoin", 5)

	assert.Error(t, err)
}
