// Package news implements the NewsSource port against NewsAPI.org.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// DefaultBaseURL is the public NewsAPI root
const DefaultBaseURL = "https://newsapi.org/v2"

// NewsAPI searches recent English-language articles, newest first. Requests
// are bounded by the client timeout; no retries.
type NewsAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewNewsAPI creates a new NewsAPI client. The key may be empty; Ready
// reports the missing credential before any call is made.
func NewNewsAPI(apiKey, baseURL string, timeout time.Duration) *NewsAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the API key is configured
func (n *NewsAPI) Ready() error {
	if n.apiKey == "" {
		return fmt.Errorf("NEWS_API_KEY is not set: %w", domain.ErrNotConfigured)
	}
	return nil
}

// Search returns up to limit articles matching the query, most recent first
func (n *NewsAPI) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	if err := n.Ready(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("apiKey", n.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status)
	}

	var body struct {
		Status   string `json:"status"`
		Articles []struct {
			Title       string    `json:"title"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q", body.Status)
	}

	articles := make([]domain.Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, domain.Article{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      source,
		})
	}
	return articles, nil
}
