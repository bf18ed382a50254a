package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stock-sentiment/internal/api"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/types"
)

const googleNewsBase = "https://news.google.com"

// Scraper is the fallback news source when the API provider returns nothing.
// It scrapes Google News search results for the ticker.
type Scraper struct {
	timeout    time.Duration
	searchBase string
	client     *api.Client
}

// NewScraper creates a news scraper
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		timeout:    timeout,
		searchBase: googleNewsBase,
		client:     api.NewClient(api.WithTimeout(timeout)),
	}
}

// FetchArticles scrapes Google News for recent ticker coverage
func (s *Scraper) FetchArticles(ctx context.Context, ticker string, limit int) ([]types.NewsArticle, error) {
	articles := []types.NewsArticle{}

	base, err := url.Parse(s.searchBase)
	if err != nil {
		return nil, fmt.Errorf("invalid search base: %w", err)
	}

	c := colly.NewCollector(
		colly.AllowedDomains(base.Hostname()),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		for key, value := range api.BrowserHeaders() {
			r.Headers.Set(key, value)
		}
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(articles) >= limit {
			return
		}

		title := strings.TrimSpace(e.ChildText("h3, h4"))
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		// Google News uses relative redirect links
		if strings.HasPrefix(link, "./articles/") {
			link = s.searchBase + link[1:]
		}

		articles = append(articles, types.NewsArticle{
			Ticker: ticker,
			Title:  title,
			URL:    link,
			Source: "GoogleNews",
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "url", r.Request.URL.String())
	})

	searchQuery := url.QueryEscape(ticker + " stock news")
	searchURL := fmt.Sprintf("%s/search?q=%s&hl=en-US&gl=US&ceid=US:en", s.searchBase, searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	articles = s.enrichArticles(ctx, articles)

	logger.Info(ctx, "News scraping completed", "ticker", ticker, "articles", len(articles))

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}

// enrichArticles fetches article bodies for entries that only carried a headline
func (s *Scraper) enrichArticles(ctx context.Context, articles []types.NewsArticle) []types.NewsArticle {
	enriched := make([]types.NewsArticle, len(articles))
	copy(enriched, articles)

	for i := range enriched {
		select {
		case <-ctx.Done():
			return enriched
		default:
		}
		if len(enriched[i].Content) < 100 {
			if body := s.fetchArticleBody(ctx, enriched[i].URL); body != "" {
				enriched[i].Content = body
			}
		}
	}

	return enriched
}

// fetchArticleBody downloads an article page and extracts its paragraph text
func (s *Scraper) fetchArticleBody(ctx context.Context, articleURL string) string {
	resp, err := s.client.GET(ctx, articleURL, api.BrowserHeaders())
	if err != nil {
		logger.Debug(ctx, "Failed to fetch article body", "url", articleURL, "error", err)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return ""
	}

	return extractParagraphs(doc)
}

// extractParagraphs pulls substantial paragraph text from common article containers
func extractParagraphs(doc *goquery.Document) string {
	paragraphs := []string{}
	doc.Find("article p, div.article-body p, div.content-body p, div.story-content p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}
