package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	News struct {
		Provider        string `yaml:"provider"`    // NEWSAPI or SCRAPER
		APIKeyEnv       string `yaml:"api_key_env"` // env var holding the NewsAPI key
		MaxArticles     int    `yaml:"max_articles"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
		TimeoutSeconds  int    `yaml:"timeout_seconds"`
		FallbackScraper bool   `yaml:"fallback_scraper"`
	} `yaml:"news"`
	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, CLAUDE or STATIC
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		Concurrency int     `yaml:"concurrency"`
	} `yaml:"llm"`
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Stats struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"stats"`
}

func (c *Config) Validate() error {
	switch c.News.Provider {
	case "NEWSAPI", "SCRAPER":
	default:
		return fmt.Errorf("invalid news.provider '%s': must be 'NEWSAPI' or 'SCRAPER'", c.News.Provider)
	}
	if c.News.MaxArticles <= 0 || c.News.MaxArticles > 100 {
		return fmt.Errorf("news.max_articles must be between 1-100, got %d", c.News.MaxArticles)
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "STATIC":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE' or 'STATIC'", c.LLM.Provider)
	}
	if c.LLM.Concurrency <= 0 {
		return fmt.Errorf("llm.concurrency must be positive, got %d", c.LLM.Concurrency)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// DefaultConfig returns a configuration usable without a config file
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.News.Provider == "" {
		c.News.Provider = "NEWSAPI"
	}
	if c.News.APIKeyEnv == "" {
		c.News.APIKeyEnv = "NEWS_API_KEY"
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 15
	}
	if c.News.CacheTTLMinutes == 0 {
		c.News.CacheTTLMinutes = 60
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 30
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "OPENAI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Concurrency == 0 {
		c.LLM.Concurrency = 4
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Stats.Dir == "" {
		c.Stats.Dir = "reports"
	}
}

// NewsTimeout returns the news fetch timeout as a duration
func (c *Config) NewsTimeout() time.Duration {
	return time.Duration(c.News.TimeoutSeconds) * time.Second
}

// NewsCacheTTL returns the article cache TTL as a duration
func (c *Config) NewsCacheTTL() time.Duration {
	return time.Duration(c.News.CacheTTLMinutes) * time.Minute
}
