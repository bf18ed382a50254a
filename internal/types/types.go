package types

import "time"

// NewsArticle is one retrieved news item before classification
type NewsArticle struct {
	Ticker      string `json:"ticker"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author,omitempty"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Sentiment categories as reported by the classifier
const (
	CategoryPositive = "POSITIVE"
	CategoryNeutral  = "NEUTRAL"
	CategoryNegative = "NEGATIVE"
)

// ArticleSentiment is the classifier's judgment of a single article.
// Score is on a fixed [0,10] scale: 10 maximally bullish, 0 maximally bearish.
type ArticleSentiment struct {
	Headline string  `json:"headline"`
	Score    float64 `json:"sentiment_score"`
	Category string  `json:"sentiment_category"`
	Reason   string  `json:"impact_reason"`
}

// Valid reports whether the record may enter aggregation
func (a ArticleSentiment) Valid() bool {
	return a.Headline != "" && a.Score >= 0 && a.Score <= 10
}

// SentimentIndex is the aggregate result over all valid article sentiments.
// Immutable once produced; MostPositive and MostNegative may refer to the
// same record when all scores are equal.
type SentimentIndex struct {
	AverageScore float64          `json:"average_score"`
	OverallLabel string           `json:"overall_label"`
	ArticleCount int              `json:"article_count"`
	DroppedCount int              `json:"dropped_count,omitempty"`
	MostPositive ArticleSentiment `json:"most_positive"`
	MostNegative ArticleSentiment `json:"most_negative"`
}

// TickerReport is the presentation boundary object: the index plus the run
// context the caller supplies. Serves the console and the HTTP response with
// identical content.
type TickerReport struct {
	Ticker       string         `json:"ticker"`
	FetchedCount int            `json:"fetched_count"`
	Index        SentimentIndex `json:"index"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
