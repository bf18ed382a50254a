package news

import (
	"context"
	"errors"
	"sync"
	"time"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/types"
)

// Service fronts the configured news providers with a per-ticker TTL cache
// and the scraper fallback when the primary source comes up empty.
type Service struct {
	primary  Provider
	fallback Provider
	cache    *articleCache
	limit    int
}

// ServiceConfig configures the news service
type ServiceConfig struct {
	MaxArticles   int           // Maximum articles to fetch per ticker
	CacheDuration time.Duration // How long to cache fetched articles
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxArticles:   15,
		CacheDuration: 1 * time.Hour,
	}
}

// articleCache stores fetched articles temporarily
type articleCache struct {
	mu       sync.RWMutex
	data     map[string]*cacheEntry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	articles  []types.NewsArticle
	timestamp time.Time
}

func newArticleCache(ttl time.Duration) *articleCache {
	cache := &articleCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

// get retrieves cached articles if still fresh
func (c *articleCache) get(ticker string) ([]types.NewsArticle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[ticker]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}

	return entry.articles, true
}

func (c *articleCache) set(ticker string, articles []types.NewsArticle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[ticker] = &cacheEntry{
		articles:  articles,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries until the cache is closed
func (c *articleCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *articleCache) close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *articleCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for ticker, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, ticker)
		}
	}
}

// NewService creates a news service over a primary provider and an optional
// fallback (nil disables the fallback)
func NewService(primary, fallback Provider, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}

	return &Service{
		primary:  primary,
		fallback: fallback,
		cache:    newArticleCache(cfg.CacheDuration),
		limit:    cfg.MaxArticles,
	}
}

// FetchArticles returns recent articles for the ticker, cached or fresh
func (s *Service) FetchArticles(ctx context.Context, ticker string, limit int) ([]types.NewsArticle, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	if cached, ok := s.cache.get(ticker); ok {
		logger.Info(ctx, "Using cached articles", "ticker", ticker, "count", len(cached))
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	articles, err := s.primary.FetchArticles(ctx, ticker, limit)
	if err != nil && s.fallback != nil {
		logger.Warn(ctx, "Primary news source failed, trying fallback", "ticker", ticker, "error", err)
		var ferr error
		articles, ferr = s.fallback.FetchArticles(ctx, ticker, limit)
		if ferr != nil {
			// A hard primary failure outranks the fallback's empty result
			if !errors.Is(err, ErrNoArticles) {
				return nil, err
			}
			return nil, ferr
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}

	s.cache.set(ticker, articles)

	return articles, nil
}

// Close stops the cache cleanup goroutine. Safe to call more than once.
func (s *Service) Close() {
	s.cache.close()
}

// ClearCache removes all cached articles
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}

// CachedTickers returns the tickers with cached articles
func (s *Service) CachedTickers() []string {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	tickers := make([]string, 0, len(s.cache.data))
	for t := range s.cache.data {
		tickers = append(tickers, t)
	}
	return tickers
}
