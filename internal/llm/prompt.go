package llm

import (
	"fmt"

	"stock-sentiment/internal/types"
)

const systemPrompt = "You are a professional Senior Capital Market Analyst expert at analyzing news sentiment for investment decisions. Respond ONLY with valid JSON."

const responseSchema = `{
  "headline": "the original headline of the article",
  "sentiment_score": 0.0 to 10.0 (float, 0 = extremely negative, 10 = extremely positive),
  "sentiment_category": "POSITIVE|NEGATIVE|NEUTRAL",
  "impact_reason": "short summary (max 20 words) of the potential impact on the stock price"
}`

// buildPrompt creates the per-article analysis prompt
func buildPrompt(article types.NewsArticle) string {
	content := article.Content
	if len(content) > 2000 {
		content = content[:2000] + "..."
	}

	return fmt.Sprintf(`Analyze the following news snippet concerning the company %s and provide a structured sentiment analysis.

STRICT INSTRUCTIONS:
1. ONLY RETURN VALID JSON. Do not include any other text, greetings, or explanations.
2. Sentiment Score: a number from 0 (Extremely Negative, High Risk) to 10 (Extremely Positive, High Opportunity).
3. Impact Reason: a short summary (max 20 words) explaining the article and why it received that score.

DATA FOR ANALYSIS:
TITLE: %s
SOURCE: %s
CONTENT: %s

Respond ONLY with valid JSON matching this schema:
%s`, article.Ticker, article.Title, article.Source, content, responseSchema)
}
