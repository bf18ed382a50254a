package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"stock-sentiment/internal/api"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/store"
	"stock-sentiment/internal/types"
)

const anthropicVersion = "2023-06-01"

// ClaudeClassifier classifies articles through the Anthropic messages API
type ClaudeClassifier struct {
	cfg    *store.Config
	client *api.Client
}

// NewClaudeClassifier creates a Claude-backed classifier
func NewClaudeClassifier(cfg *store.Config) *ClaudeClassifier {
	return &ClaudeClassifier{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL("https://api.anthropic.com/v1"),
			api.WithHeader("anthropic-version", anthropicVersion),
		),
	}
}

// ClassifyArticle analyzes one article's sentiment
func (c *ClaudeClassifier) ClassifyArticle(ctx context.Context, article types.NewsArticle) (types.ArticleSentiment, error) {
	ctx, span := logger.StartSpan(ctx, "claude-classify-article")
	defer span.End()

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return types.ArticleSentiment{}, errors.New("ANTHROPIC_API_KEY missing")
	}

	body := map[string]any{
		"model":       c.cfg.LLM.Model,
		"max_tokens":  c.cfg.LLM.MaxTokens,
		"temperature": c.cfg.LLM.Temperature,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(article)},
		},
	}

	resp, err := c.client.POST(ctx, "/messages", body, map[string]string{
		"x-api-key": apiKey,
	})
	if err != nil {
		return types.ArticleSentiment{}, fmt.Errorf("claude request: %w", err)
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.ArticleSentiment{}, err
	}
	if len(r.Content) == 0 {
		return types.ArticleSentiment{}, errors.New("no content")
	}

	return parseSentiment(strings.TrimSpace(r.Content[0].Text), article)
}
