package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock-sentiment/internal/api"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/types"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// APIClient fetches articles from the NewsAPI /v2/everything endpoint
type APIClient struct {
	client *api.Client
	apiKey string
	retry  *api.RetryConfig
}

// NewAPIClient creates a NewsAPI client
func NewAPIClient(apiKey string, timeout time.Duration) *APIClient {
	return &APIClient{
		client: api.NewClient(
			api.WithBaseURL(newsAPIBaseURL),
			api.WithTimeout(timeout),
			api.WithLogging(true),
		),
		apiKey: apiKey,
		retry:  api.DefaultRetryConfig(),
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Author string `json:"author"`
		Title  string `json:"title"`
		// Description carries the snippet; Content is truncated by the API
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// FetchArticles retrieves recent English-language articles mentioning the
// ticker, newest first. Returns ErrNoArticles when the query matches nothing.
func (c *APIClient) FetchArticles(ctx context.Context, ticker string, limit int) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", ticker+" stock")
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	req := api.NewRequest(http.MethodGet, "/everything?"+params.Encode()).WithContext(ctx)

	resp, err := c.client.DoWithRetry(req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}

	var r newsAPIResponse
	if err := resp.ParseJSON(&r); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if r.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s", r.Status, r.Message)
	}

	articles := make([]types.NewsArticle, 0, len(r.Articles))
	for _, a := range r.Articles {
		if a.Title == "" {
			continue
		}
		content := a.Content
		if content == "" {
			content = a.Description
		}
		articles = append(articles, types.NewsArticle{
			Ticker:      ticker,
			Title:       a.Title,
			Content:     content,
			Author:      a.Author,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
		if len(articles) >= limit {
			break
		}
	}

	logger.Info(ctx, "NewsAPI fetch completed", "ticker", ticker, "articles", len(articles))

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}
