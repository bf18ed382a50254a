package news

import (
	"context"
	"errors"

	"stock-sentiment/internal/types"
)

// ErrNoArticles is returned when the provider reached the news source but the
// ticker yielded nothing. Distinguished from transport failures so callers can
// map it to a "no articles found" outcome.
var ErrNoArticles = errors.New("no articles found for ticker")

// Provider retrieves recent news articles for a ticker, most recent first
type Provider interface {
	FetchArticles(ctx context.Context, ticker string, limit int) ([]types.NewsArticle, error)
}
