package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-sentiment/internal/api"
)

func testAPIClient(serverURL string) *APIClient {
	return &APIClient{
		client: api.NewClient(api.WithBaseURL(serverURL), api.WithTimeout(5*time.Second)),
		apiKey: "test-key",
		retry:  &api.RetryConfig{MaxAttempts: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond},
	}
}

func TestAPIClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "AAPL stock" {
			t.Errorf("unexpected query %q", q.Get("q"))
		}
		if q.Get("sortBy") != "publishedAt" {
			t.Errorf("unexpected sortBy %q", q.Get("sortBy"))
		}
		fmt.Fprint(w, `{
			"status": "ok",
			"articles": [
				{"author": "a", "title": "Apple rallies", "description": "snippet one", "url": "http://x/1", "publishedAt": "2026-02-01T10:00:00Z", "source": {"name": "Wire"}},
				{"author": "", "title": "", "description": "dropped, no title"},
				{"author": "b", "title": "Apple slides", "content": "full body", "source": {"name": "Wire"}}
			]
		}`)
	}))
	defer server.Close()

	c := testAPIClient(server.URL)
	articles, err := c.FetchArticles(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles (untitled dropped), got %d", len(articles))
	}
	if articles[0].Title != "Apple rallies" {
		t.Errorf("Expected input order preserved, got %q first", articles[0].Title)
	}
	if articles[0].Content != "snippet one" {
		t.Errorf("Expected description used when content empty, got %q", articles[0].Content)
	}
	if articles[1].Content != "full body" {
		t.Errorf("Expected content preferred over description, got %q", articles[1].Content)
	}
	if articles[0].Ticker != "AAPL" {
		t.Errorf("Expected ticker attached, got %q", articles[0].Ticker)
	}
}

func TestAPIClientEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok", "articles": []}`)
	}))
	defer server.Close()

	c := testAPIClient(server.URL)
	_, err := c.FetchArticles(context.Background(), "ZZZZ", 10)
	if !errors.Is(err, ErrNoArticles) {
		t.Errorf("Expected ErrNoArticles, got %v", err)
	}
}

func TestAPIClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error", "message": "apiKeyInvalid"}`)
	}))
	defer server.Close()

	c := testAPIClient(server.URL)
	_, err := c.FetchArticles(context.Background(), "AAPL", 10)
	if err == nil {
		t.Fatal("Expected error for non-ok status")
	}
	if errors.Is(err, ErrNoArticles) {
		t.Error("Provider error must not be reported as no-articles")
	}
}
