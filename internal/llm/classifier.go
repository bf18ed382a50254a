package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-sentiment/internal/store"
	"stock-sentiment/internal/types"
)

// Classifier turns one article into a sentiment judgment. Implementations
// must fail per-article: an error here never aborts the whole run.
type Classifier interface {
	ClassifyArticle(ctx context.Context, article types.NewsArticle) (types.ArticleSentiment, error)
}

// NewClassifier returns the classifier for the configured provider
func NewClassifier(cfg *store.Config) (Classifier, error) {
	switch strings.ToUpper(cfg.LLM.Provider) {
	case "OPENAI":
		return NewOpenAIClassifier(cfg), nil
	case "CLAUDE":
		return NewClaudeClassifier(cfg), nil
	case "STATIC":
		return NewStaticClassifier(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}

// wire format the model is instructed to emit
type sentimentResponse struct {
	Headline string  `json:"headline"`
	Score    float64 `json:"sentiment_score"`
	Category string  `json:"sentiment_category"`
	Reason   string  `json:"impact_reason"`
}

// parseSentiment decodes the model output into an ArticleSentiment, tolerating
// markdown code fences around the JSON
func parseSentiment(raw string, article types.NewsArticle) (types.ArticleSentiment, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var r sentimentResponse
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return types.ArticleSentiment{}, fmt.Errorf("invalid JSON response: %w", err)
	}

	headline := r.Headline
	if headline == "" {
		headline = article.Title
	}

	return types.ArticleSentiment{
		Headline: headline,
		Score:    r.Score,
		Category: strings.ToUpper(strings.TrimSpace(r.Category)),
		Reason:   r.Reason,
	}, nil
}
