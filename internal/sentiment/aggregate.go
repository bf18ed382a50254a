package sentiment

import (
	"errors"
	"math"

	"stock-sentiment/internal/types"
)

// ErrEmptyInput is returned when no valid article sentiment remains after
// filtering. Callers must not render a report from it.
var ErrEmptyInput = errors.New("no valid article sentiments to aggregate")

// Overall labels for the five score buckets. Bucket bounds are inclusive on
// the low side: [8,10] Bullish, [6,8) NeutralMixed, [4,6) Neutral,
// [2,4) BearishMixed, [0,2) Bearish.
const (
	LabelBullish      = "Bullish"
	LabelNeutralMixed = "Neutral/Mixed (Uncertainty)"
	LabelNeutral      = "Neutral"
	LabelBearishMixed = "Bearish/Mixed (Uncertainty)"
	LabelBearish      = "Bearish"
)

// Label maps an average score to its overall sentiment label
func Label(avg float64) string {
	switch {
	case avg >= 8.0:
		return LabelBullish
	case avg >= 6.0:
		return LabelNeutralMixed
	case avg >= 4.0:
		return LabelNeutral
	case avg >= 2.0:
		return LabelBearishMixed
	default:
		return LabelBearish
	}
}

// Aggregate reduces per-article sentiments to a single SentimentIndex.
// Invalid records (out-of-range score, empty headline) are dropped and
// counted, not fatal: one bad classifier response must not abort the run.
// Ties for the extremal articles go to the earliest record in input order.
// Pure function, no retained state; safe to call concurrently.
func Aggregate(articles []types.ArticleSentiment) (types.SentimentIndex, error) {
	valid := make([]types.ArticleSentiment, 0, len(articles))
	for _, a := range articles {
		if a.Valid() {
			valid = append(valid, a)
		}
	}
	dropped := len(articles) - len(valid)

	if len(valid) == 0 {
		return types.SentimentIndex{}, ErrEmptyInput
	}

	total := 0.0
	best, worst := 0, 0
	for i, a := range valid {
		total += a.Score
		if a.Score > valid[best].Score {
			best = i
		}
		if a.Score < valid[worst].Score {
			worst = i
		}
	}

	avg := round2(total / float64(len(valid)))

	return types.SentimentIndex{
		AverageScore: avg,
		OverallLabel: Label(avg),
		ArticleCount: len(valid),
		DroppedCount: dropped,
		MostPositive: valid[best],
		MostNegative: valid[worst],
	}, nil
}

// round2 rounds half-up to two decimal places
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
