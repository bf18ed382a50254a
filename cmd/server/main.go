package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock-sentiment/internal/analyzer"
	"stock-sentiment/internal/llm"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/pipeline"
	"stock-sentiment/internal/server"
	"stock-sentiment/internal/store"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()

	must(logger.Init())

	cfg, err := loadConfig()
	must(err)

	p, svc, err := buildPipeline(cfg)
	must(err)
	defer svc.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(p, cfg.Server.CORSOrigins).Handler(),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-sigc
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		log.Printf("tracer shutdown error: %v", err)
	}
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
		return nil, nil, fmt.Errorf("build classifier: %w", err)
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
