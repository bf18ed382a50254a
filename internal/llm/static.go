package llm

import (
	"context"
	"strings"

	"stock-sentiment/internal/types"
)

// StaticClassifier is a deterministic, no-network classifier for offline runs
// and tests. It scores by keyword scan from a neutral baseline.
type StaticClassifier struct{}

// NewStaticClassifier creates a static classifier
func NewStaticClassifier() *StaticClassifier {
	return &StaticClassifier{}
}

var positiveWords = []string{
	"beat", "beats", "rally", "rallies", "surge", "gain", "gains", "record",
	"upgrade", "growth", "profit", "bullish", "soar", "jump",
}

var negativeWords = []string{
	"miss", "misses", "fall", "falls", "drop", "drops", "plunge", "loss",
	"downgrade", "lawsuit", "bearish", "recall", "slump", "slide", "slides",
}

// ClassifyArticle scores the article from its headline and body keywords
func (c *StaticClassifier) ClassifyArticle(ctx context.Context, article types.NewsArticle) (types.ArticleSentiment, error) {
	text := strings.ToLower(article.Title + " " + article.Content)

	score := 5.0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			score += 1.5
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			score -= 1.5
		}
	}
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}

	category := types.CategoryNeutral
	if score >= 6.5 {
		category = types.CategoryPositive
	} else if score <= 3.5 {
		category = types.CategoryNegative
	}

	return types.ArticleSentiment{
		Headline: article.Title,
		Score:    score,
		Category: category,
		Reason:   "Keyword-based offline classification",
	}, nil
}
