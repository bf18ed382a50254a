package llm

import (
	"context"
	"testing"

	"stock-sentiment/internal/store"
	"stock-sentiment/internal/types"
)

func TestParseSentiment(t *testing.T) {
	article := types.NewsArticle{Ticker: "AAPL", Title: "Apple beats estimates"}

	raw := `{"headline": "Apple beats estimates", "sentiment_score": 8.5, "sentiment_category": "positive", "impact_reason": "Strong quarter"}`
	s, err := parseSentiment(raw, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Score != 8.5 {
		t.Errorf("Expected score 8.5, got %v", s.Score)
	}
	if s.Category != types.CategoryPositive {
		t.Errorf("Expected category normalized to POSITIVE, got %q", s.Category)
	}
	if s.Reason != "Strong quarter" {
		t.Errorf("Expected reason preserved, got %q", s.Reason)
	}
}

func TestParseSentimentStripsFences(t *testing.T) {
	article := types.NewsArticle{Ticker: "AAPL", Title: "fallback headline"}

	raw := "```json\n{\"sentiment_score\": 3, \"sentiment_category\": \"NEGATIVE\", \"impact_reason\": \"bad\"}\n```"
	s, err := parseSentiment(raw, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Score != 3 {
		t.Errorf("Expected score 3, got %v", s.Score)
	}
	if s.Headline != "fallback headline" {
		t.Errorf("Expected article title fallback, got %q", s.Headline)
	}
}

func TestParseSentimentInvalidJSON(t *testing.T) {
	_, err := parseSentiment("I think this stock looks good", types.NewsArticle{Title: "x"})
	if err == nil {
		t.Fatal("Expected error for non-JSON output")
	}
}

func TestNewClassifier(t *testing.T) {
	cfg := store.DefaultConfig()

	cfg.LLM.Provider = "OPENAI"
	if c, err := NewClassifier(cfg); err != nil || c == nil {
		t.Errorf("Expected OpenAI classifier, got %v / %v", c, err)
	}

	cfg.LLM.Provider = "CLAUDE"
	if c, err := NewClassifier(cfg); err != nil || c == nil {
		t.Errorf("Expected Claude classifier, got %v / %v", c, err)
	}

	cfg.LLM.Provider = "STATIC"
	if c, err := NewClassifier(cfg); err != nil || c == nil {
		t.Errorf("Expected static classifier, got %v / %v", c, err)
	}

	cfg.LLM.Provider = "GEMINI"
	if _, err := NewClassifier(cfg); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestStaticClassifierDeterministic(t *testing.T) {
	c := NewStaticClassifier()
	ctx := context.Background()

	article := types.NewsArticle{
		Ticker:  "AAPL",
		Title:   "Apple shares surge after record profit",
		Content: "The company posted record growth.",
	}

	first, err := c.ClassifyArticle(ctx, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.ClassifyArticle(ctx, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("Expected deterministic output, got %+v vs %+v", first, second)
	}
	if first.Category != types.CategoryPositive {
		t.Errorf("Expected POSITIVE for bullish text, got %q", first.Category)
	}
	if !first.Valid() {
		t.Errorf("Expected valid sentiment, got %+v", first)
	}
}

func TestStaticClassifierClamps(t *testing.T) {
	c := NewStaticClassifier()

	s, err := c.ClassifyArticle(context.Background(), types.NewsArticle{
		Ticker: "XYZ",
		Title:  "Shares plunge as lawsuit, recall and downgrade hit; miss deepens loss in slump",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Score < 0 || s.Score > 10 {
		t.Errorf("Expected score clamped to [0,10], got %v", s.Score)
	}
	if s.Category != types.CategoryNegative {
		t.Errorf("Expected NEGATIVE for bearish text, got %q", s.Category)
	}
}
