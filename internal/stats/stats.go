package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"stock-sentiment/internal/types"
)

var csvHeaders = []string{
	"run_id", "run_timestamp", "ticker",
	"fetch_status", "articles_fetched", "fetch_duration_sec",
	"articles_classified", "classification_failures", "classify_duration_sec",
	"records_dropped", "average_score", "overall_label",
	"positive_count", "negative_count", "neutral_count",
	"total_runtime_sec", "run_status", "error_stage", "error_message",
}

// Collector accumulates one run's statistics and appends them as a CSV row.
// Best effort: a stats write failure never fails the run.
type Collector struct {
	mu      sync.Mutex
	dir     string
	started time.Time
	row     map[string]string
}

// NewRun starts collecting statistics for one ticker run
func NewRun(dir, ticker string) *Collector {
	now := time.Now()
	c := &Collector{
		dir:     dir,
		started: now,
		row:     make(map[string]string, len(csvHeaders)),
	}
	c.row["run_id"] = fmt.Sprintf("%d_%s", now.Unix(), ticker)
	c.row["run_timestamp"] = now.Format("2006-01-02 15:04:05")
	c.row["ticker"] = ticker
	c.row["run_status"] = "IN_PROGRESS"
	return c
}

// Fetch records the news retrieval phase
func (c *Collector) Fetch(fetched int, d time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := "OK"
	if !ok {
		status = "NO_ARTICLES"
	}
	c.row["fetch_status"] = status
	c.row["articles_fetched"] = strconv.Itoa(fetched)
	c.row["fetch_duration_sec"] = formatSec(d)
}

// Classification records the classification phase
func (c *Collector) Classification(classified, failures int, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.row["articles_classified"] = strconv.Itoa(classified)
	c.row["classification_failures"] = strconv.Itoa(failures)
	c.row["classify_duration_sec"] = formatSec(d)
}

// Index records the aggregation outcome
func (c *Collector) Index(idx types.SentimentIndex, sentiments []types.ArticleSentiment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.row["records_dropped"] = strconv.Itoa(idx.DroppedCount)
	c.row["average_score"] = strconv.FormatFloat(idx.AverageScore, 'f', 2, 64)
	c.row["overall_label"] = idx.OverallLabel

	var pos, neg, neu int
	for _, s := range sentiments {
		switch s.Category {
		case types.CategoryPositive:
			pos++
		case types.CategoryNegative:
			neg++
		case types.CategoryNeutral:
			neu++
		}
	}
	c.row["positive_count"] = strconv.Itoa(pos)
	c.row["negative_count"] = strconv.Itoa(neg)
	c.row["neutral_count"] = strconv.Itoa(neu)
}

// Fail marks the run failed at a stage and writes the row immediately
func (c *Collector) Fail(stage string, err error) error {
	c.mu.Lock()
	c.row["run_status"] = "FAILED"
	c.row["error_stage"] = stage
	if err != nil {
		c.row["error_message"] = err.Error()
	}
	c.mu.Unlock()
	return c.Finalize()
}

// Finalize writes the completed row to the ticker-independent stats file
func (c *Collector) Finalize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.row["total_runtime_sec"] = formatSec(time.Since(c.started))
	if c.row["run_status"] == "IN_PROGRESS" {
		c.row["run_status"] = "OK"
	}

	return c.appendRow()
}

func (c *Collector) appendRow() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(c.dir, "run_stats.csv")

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeaders); err != nil {
			return err
		}
	}

	record := make([]string, len(csvHeaders))
	for i, h := range csvHeaders {
		if v, ok := c.row[h]; ok {
			record[i] = v
		} else {
			record[i] = "N/A"
		}
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()

	return w.Error()
}

func formatSec(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
