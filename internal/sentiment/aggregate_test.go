package sentiment

import (
	"errors"
	"reflect"
	"testing"

	"stock-sentiment/internal/types"
)

func art(headline string, score float64) types.ArticleSentiment {
	return types.ArticleSentiment{
		Headline: headline,
		Score:    score,
		Category: types.CategoryNeutral,
		Reason:   "test record",
	}
}

func TestAggregateBasic(t *testing.T) {
	idx, err := Aggregate([]types.ArticleSentiment{
		art("A", 9),
		art("B", 3),
		art("C", 7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if idx.AverageScore != 6.33 {
		t.Errorf("expected average 6.33, got %v", idx.AverageScore)
	}
	if idx.OverallLabel != LabelNeutralMixed {
		t.Errorf("expected label %q, got %q", LabelNeutralMixed, idx.OverallLabel)
	}
	if idx.ArticleCount != 3 {
		t.Errorf("expected article count 3, got %d", idx.ArticleCount)
	}
	if idx.MostPositive.Headline != "A" {
		t.Errorf("expected most positive A, got %s", idx.MostPositive.Headline)
	}
	if idx.MostNegative.Headline != "B" {
		t.Errorf("expected most negative B, got %s", idx.MostNegative.Headline)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for nil input, got %v", err)
	}

	_, err = Aggregate([]types.ArticleSentiment{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for empty input, got %v", err)
	}
}

func TestAggregateAllInvalid(t *testing.T) {
	_, err := Aggregate([]types.ArticleSentiment{
		art("over", 11),
		art("under", -1),
		art("", 5),
	})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput when all records invalid, got %v", err)
	}
}

func TestAggregateDropsInvalid(t *testing.T) {
	idx, err := Aggregate([]types.ArticleSentiment{
		art("over", 11),
		art("ok", 6),
		art("", 4),
		art("under", -1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if idx.ArticleCount != 1 {
		t.Errorf("expected 1 valid article, got %d", idx.ArticleCount)
	}
	if idx.DroppedCount != 3 {
		t.Errorf("expected 3 dropped records, got %d", idx.DroppedCount)
	}
	if idx.AverageScore != 6.0 {
		t.Errorf("expected average 6.0, got %v", idx.AverageScore)
	}
}

func TestAggregateTieBreak(t *testing.T) {
	idx, err := Aggregate([]types.ArticleSentiment{
		art("A", 5),
		art("B", 5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if idx.MostPositive.Headline != "A" {
		t.Errorf("expected first record to win positive tie, got %s", idx.MostPositive.Headline)
	}
	if idx.MostNegative.Headline != "A" {
		t.Errorf("expected first record to win negative tie, got %s", idx.MostNegative.Headline)
	}
}

func TestAggregateExtremalBounds(t *testing.T) {
	input := []types.ArticleSentiment{
		art("A", 4.2), art("B", 8.9), art("C", 0.5), art("D", 6.1), art("E", 8.9),
	}
	idx, err := Aggregate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range input {
		if idx.MostPositive.Score < r.Score {
			t.Errorf("most positive score %v below record %q score %v", idx.MostPositive.Score, r.Headline, r.Score)
		}
		if idx.MostNegative.Score > r.Score {
			t.Errorf("most negative score %v above record %q score %v", idx.MostNegative.Score, r.Headline, r.Score)
		}
	}
	if idx.MostPositive.Headline != "B" {
		t.Errorf("expected earlier of the tied maxima, got %s", idx.MostPositive.Headline)
	}
	if idx.AverageScore < 0 || idx.AverageScore > 10 {
		t.Errorf("average %v outside [0,10]", idx.AverageScore)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	input := []types.ArticleSentiment{
		art("A", 7.3), art("B", 2.2), art("C", 9.9),
	}
	first, err := Aggregate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestAggregateRounding(t *testing.T) {
	// 1/3 averages need half-up rounding to two decimals
	idx, err := Aggregate([]types.ArticleSentiment{
		art("A", 1), art("B", 1), art("C", 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.AverageScore != 1.33 {
		t.Errorf("expected 1.33, got %v", idx.AverageScore)
	}

	// exact half rounds up
	idx, err = Aggregate([]types.ArticleSentiment{
		art("A", 0.125), art("B", 0.125),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.AverageScore != 0.13 {
		t.Errorf("expected half-up 0.13, got %v", idx.AverageScore)
	}
}

func TestLabelBuckets(t *testing.T) {
	cases := []struct {
		avg   float64
		label string
	}{
		{10.0, LabelBullish},
		{8.0, LabelBullish},
		{7.99, LabelNeutralMixed},
		{6.0, LabelNeutralMixed},
		{5.99, LabelNeutral},
		{4.0, LabelNeutral},
		{3.99, LabelBearishMixed},
		{2.0, LabelBearishMixed},
		{1.99, LabelBearish},
		{0.0, LabelBearish},
	}

	for _, c := range cases {
		if got := Label(c.avg); got != c.label {
			t.Errorf("Label(%v) = %q, expected %q", c.avg, got, c.label)
		}
	}
}

func TestScoreBoundariesAreValid(t *testing.T) {
	idx, err := Aggregate([]types.ArticleSentiment{
		art("floor", 0),
		art("ceil", 10),
	})
	if err != nil {
		t.Fatalf("boundary scores must be valid: %v", err)
	}
	if idx.ArticleCount != 2 {
		t.Errorf("expected both boundary records kept, got %d", idx.ArticleCount)
	}
	if idx.AverageScore != 5.0 {
		t.Errorf("expected average 5.0, got %v", idx.AverageScore)
	}
}
