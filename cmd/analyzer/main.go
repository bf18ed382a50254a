package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock-sentiment/internal/analyzer"
	"stock-sentiment/internal/llm"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/pipeline"
	"stock-sentiment/internal/report"
	"stock-sentiment/internal/sentiment"
	"stock-sentiment/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: analyzer <TICKER>")
		os.Exit(2)
	}
	ticker := os.Args[1]

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer logger.Shutdown(context.Background())

	p, svc, err := buildPipeline(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build pipeline: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	rep, err := p.Run(ctx, ticker)
	if err != nil {
		fmt.Fprintln(os.Stderr, runErrorMessage(ticker, err))
		os.Exit(1)
	}

	fmt.Print(report.RenderText(rep))
}

func loadConfig() (*store.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func buildPipeline(cfg *store.Config) (*pipeline.Pipeline, *news.Service, error) {
	classifier, err := llm.NewClassifier(cfg)
	if err != nil {
		return nil, nil, err
	}

	var primary news.Provider
	if cfg.News.Provider == "SCRAPER" {
		primary = news.NewScraper(cfg.NewsTimeout())
	} else {
		primary = news.NewAPIClient(os.Getenv(cfg.News.APIKeyEnv), cfg.NewsTimeout())
	}

	var fallback news.Provider
	if cfg.News.FallbackScraper && cfg.News.Provider != "SCRAPER" {
		fallback = news.NewScraper(cfg.NewsTimeout())
	}

	svc := news.NewService(primary, fallback, &news.ServiceConfig{
		MaxArticles:   cfg.News.MaxArticles,
		CacheDuration: cfg.NewsCacheTTL(),
	})

	return pipeline.New(svc, analyzer.New(classifier, cfg.LLM.Concurrency), pipeline.Options{
		MaxArticles:  cfg.News.MaxArticles,
		StatsEnabled: cfg.Stats.Enabled,
		StatsDir:     cfg.Stats.Dir,
	}), svc, nil
}

func runErrorMessage(ticker string, err error) string {
	switch {
	case errors.Is(err, pipeline.ErrInvalidTicker):
		return fmt.Sprintf("Invalid ticker symbol %q", ticker)
	case errors.Is(err, news.ErrNoArticles):
		return fmt.Sprintf("No articles found for %s", ticker)
	case errors.Is(err, sentiment.ErrEmptyInput):
		return fmt.Sprintf("All article classifications failed for %s", ticker)
	default:
		return fmt.Sprintf("Analysis failed: %v", err)
	}
}
