package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"stock-sentiment/internal/analyzer"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/report"
	"stock-sentiment/internal/sentiment"
	"stock-sentiment/internal/stats"
	"stock-sentiment/internal/types"
)

// ErrInvalidTicker is returned for ticker symbols that are not short
// alphanumeric identifiers.
var ErrInvalidTicker = errors.New("invalid ticker symbol")

var tickerPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}(\.[A-Z]{1,3})?$`)

// Options tunes a pipeline
type Options struct {
	MaxArticles  int
	StatsEnabled bool
	StatsDir     string
}

// Pipeline runs one ticker through retrieval, classification and aggregation.
// Holds no per-run state; safe for concurrent Run calls.
type Pipeline struct {
	news     news.Provider
	analyzer *analyzer.Analyzer
	opts     Options
}

// New creates a pipeline over a news provider and an analyzer
func New(provider news.Provider, a *analyzer.Analyzer, opts Options) *Pipeline {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 15
	}
	return &Pipeline{news: provider, analyzer: a, opts: opts}
}

// Run produces the sentiment report for one ticker.
// Terminal failures are ErrInvalidTicker, news.ErrNoArticles and
// sentiment.ErrEmptyInput; everything upstream of aggregation that can be
// recovered per-article is absorbed before the core is reached.
func (p *Pipeline) Run(ctx context.Context, ticker string) (types.TickerReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(ticker) {
		return types.TickerReport{}, fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}

	var run *stats.Collector
	if p.opts.StatsEnabled {
		run = stats.NewRun(p.opts.StatsDir, ticker)
	}

	logger.Info(ctx, "Pipeline started", "ticker", ticker)

	fetchTimer := logger.StartOperation(ctx, "fetch-articles")
	articles, err := p.news.FetchArticles(fetchTimer.GetContext(), ticker, p.opts.MaxArticles)
	if err != nil {
		fetchDur := fetchTimer.EndWithError(err)
		p.recordFail(ctx, run, "fetch", err, func(c *stats.Collector) {
			c.Fetch(0, fetchDur, false)
		})
		return types.TickerReport{}, err
	}
	fetchDur := fetchTimer.End()
	if run != nil {
		run.Fetch(len(articles), fetchDur, len(articles) > 0)
	}
	logger.Info(ctx, "Articles fetched", "ticker", ticker, "count", len(articles))

	classifyTimer := logger.StartOperation(ctx, "classify-articles")
	sentiments, failed, err := p.analyzer.ClassifyAll(classifyTimer.GetContext(), articles)
	if err != nil {
		classifyTimer.EndWithError(err)
		p.recordFail(ctx, run, "classify", err, nil)
		return types.TickerReport{}, err
	}
	classifyDur := classifyTimer.End()
	if run != nil {
		run.Classification(len(sentiments), failed, classifyDur)
	}

	idx, err := sentiment.Aggregate(sentiments)
	if err != nil {
		p.recordFail(ctx, run, "aggregate", err, nil)
		return types.TickerReport{}, err
	}

	logger.Index(ctx, ticker, idx.OverallLabel, idx.AverageScore, idx.ArticleCount,
		"dropped", idx.DroppedCount, "classification_failures", failed)

	if run != nil {
		run.Index(idx, sentiments)
		if err := run.Finalize(); err != nil {
			logger.Warn(ctx, "Failed to write run stats", "error", err)
		}
	}

	return report.Assemble(ticker, len(articles), idx), nil
}

func (p *Pipeline) recordFail(ctx context.Context, run *stats.Collector, stage string, cause error, extra func(*stats.Collector)) {
	logger.ErrorWithErr(ctx, "Pipeline stage failed", cause, "stage", stage)
	if run == nil {
		return
	}
	if extra != nil {
		extra(run)
	}
	if err := run.Fail(stage, cause); err != nil {
		logger.Warn(ctx, "Failed to write run stats", "error", err)
	}
}
