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

// OpenAIClassifier classifies articles through the OpenAI chat completions API
type OpenAIClassifier struct {
	cfg    *store.Config
	client *api.Client
}

// NewOpenAIClassifier creates an OpenAI-backed classifier
func NewOpenAIClassifier(cfg *store.Config) *OpenAIClassifier {
	return &OpenAIClassifier{
		cfg:    cfg,
		client: api.NewClient(api.WithBaseURL("https://api.openai.com/v1")),
	}
}

// ClassifyArticle analyzes one article's sentiment
func (c *OpenAIClassifier) ClassifyArticle(ctx context.Context, article types.NewsArticle) (types.ArticleSentiment, error) {
	ctx, span := logger.StartSpan(ctx, "openai-classify-article")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.ArticleSentiment{}, errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildPrompt(article)},
		},
		"temperature": c.cfg.LLM.Temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}

	resp, err := c.client.POST(ctx, "/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return types.ArticleSentiment{}, fmt.Errorf("openai request: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.ArticleSentiment{}, err
	}
	if len(r.Choices) == 0 {
		return types.ArticleSentiment{}, errors.New("no choices")
	}

	return parseSentiment(strings.TrimSpace(r.Choices[0].Message.Content), article)
}
