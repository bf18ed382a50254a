package report

import (
	"fmt"
	"strings"
	"time"

	"stock-sentiment/internal/types"
)

// Assemble binds a sentiment index to its run context for presentation.
// No decision logic lives here; both renderings carry identical content.
func Assemble(ticker string, fetched int, idx types.SentimentIndex) types.TickerReport {
	return types.TickerReport{
		Ticker:       ticker,
		FetchedCount: fetched,
		Index:        idx,
		GeneratedAt:  time.Now().UTC(),
	}
}

const separator = "=========================================================================================="

// RenderText formats the report as a console block
func RenderText(r types.TickerReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", separator)
	fmt.Fprintf(&b, "FINAL SENTIMENT INDEX FOR %s (Based on %d Articles)\n", r.Ticker, r.Index.ArticleCount)
	fmt.Fprintf(&b, "%s\n\n", separator)

	fmt.Fprintf(&b, "Overall Average Score: %.2f / 10.00\n", r.Index.AverageScore)
	fmt.Fprintf(&b, "Overall Sentiment:     %s\n", r.Index.OverallLabel)
	if r.Index.DroppedCount > 0 {
		fmt.Fprintf(&b, "Dropped Records:       %d\n", r.Index.DroppedCount)
	}
	b.WriteString("\n")

	b.WriteString("Most Positive News:\n")
	writeArticle(&b, r.Index.MostPositive)

	b.WriteString("\nMost Negative News:\n")
	writeArticle(&b, r.Index.MostNegative)

	fmt.Fprintf(&b, "\n%s\n", separator)

	return b.String()
}

func writeArticle(b *strings.Builder, a types.ArticleSentiment) {
	fmt.Fprintf(b, "  Score: %g/10 | Category: %s\n", a.Score, a.Category)
	fmt.Fprintf(b, "  Headline: %s\n", a.Headline)
	if a.Reason != "" {
		fmt.Fprintf(b, "  Reason: %s\n", a.Reason)
	}
}
