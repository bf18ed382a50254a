package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stock-sentiment/internal/llm"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/types"
)

// Analyzer fans per-article classification out to the configured classifier
type Analyzer struct {
	classifier  llm.Classifier
	concurrency int
}

// New creates an analyzer with a bounded classification concurrency
func New(classifier llm.Classifier, concurrency int) *Analyzer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Analyzer{classifier: classifier, concurrency: concurrency}
}

// ClassifyAll classifies articles concurrently and returns the successful
// judgments in the original input order, plus the per-article failure count.
// Individual classification failures are logged and dropped; only context
// cancellation aborts the batch.
func (a *Analyzer) ClassifyAll(ctx context.Context, articles []types.NewsArticle) ([]types.ArticleSentiment, int, error) {
	results := make([]*types.ArticleSentiment, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, article := range articles {
		i, article := i, article
		g.Go(func() error {
			sentiment, err := a.classifier.ClassifyArticle(gctx, article)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.ErrorWithErr(gctx, "Failed to classify article", err, "headline", article.Title)
				return nil
			}
			results[i] = &sentiment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// collapse positionally so input order survives the fan-out
	sentiments := make([]types.ArticleSentiment, 0, len(articles))
	for _, r := range results {
		if r != nil {
			sentiments = append(sentiments, *r)
		}
	}

	failed := len(articles) - len(sentiments)
	logger.Info(ctx, "Article classification completed",
		"requested", len(articles), "classified", len(sentiments), "failed", failed)

	return sentiments, failed, nil
}
