package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-sentiment/internal/api"
	"stock-sentiment/internal/store"
	"stock-sentiment/internal/types"
)

func TestClaudeRequestShape(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg := store.DefaultConfig()
	cfg.LLM.Model = "claude-sonnet-4"
	cfg.LLM.Temperature = 0.5

	var body map[string]any
	var version, apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version = r.Header.Get("anthropic-version")
		apiKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"text":"{\"headline\":\"Earnings beat\",\"sentiment_score\":7.5,\"sentiment_category\":\"POSITIVE\",\"impact_reason\":\"strong quarter\"}"}]}`))
	}))
	defer server.Close()

	classifier := &ClaudeClassifier{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(server.URL),
			api.WithHeader("anthropic-version", anthropicVersion),
		),
	}

	got, err := classifier.ClassifyArticle(context.Background(), types.NewsArticle{Title: "Earnings beat"})
	if err != nil {
		t.Fatalf("ClassifyArticle returned error: %v", err)
	}

	if version != anthropicVersion {
		t.Errorf("anthropic-version header = %q, want %q", version, anthropicVersion)
	}
	if apiKey != "test-key" {
		t.Errorf("x-api-key header = %q, want test-key", apiKey)
	}
	if body["model"] != "claude-sonnet-4" {
		t.Errorf("model = %v, want claude-sonnet-4", body["model"])
	}
	if body["temperature"] != 0.5 {
		t.Errorf("temperature = %v, want 0.5", body["temperature"])
	}
	if _, ok := body["max_tokens"]; !ok {
		t.Error("request body missing max_tokens")
	}

	if got.Score != 7.5 {
		t.Errorf("score = %v, want 7.5", got.Score)
	}
	if got.Category != types.CategoryPositive {
		t.Errorf("category = %q, want %q", got.Category, types.CategoryPositive)
	}
}

func TestClaudeMissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	classifier := NewClaudeClassifier(store.DefaultConfig())
	if _, err := classifier.ClassifyArticle(context.Background(), types.NewsArticle{Title: "x"}); err == nil {
		t.Error("expected error without ANTHROPIC_API_KEY")
	}
}
