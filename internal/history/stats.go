package history

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/parley-mcp/parley/internal/models"
)

// Group-by selectors accepted by Analyze.
const (
	GroupByConfirmationType = "confirmationType"
	GroupBySuccess          = "success"
	GroupByHour             = "hour"
	GroupByDay              = "day"
)

// Analyze computes summary statistics over a date-bounded slice of
// records. Aggregates are all zero when nothing matches, and a group
// only exists when at least one record landed in it.
func Analyze(records []models.ConfirmationRecord, params models.StatsParams) (models.Stats, error) {
	var start, end *time.Time
	if params.StartDate != "" {
		t, err := parseDateBound(params.StartDate, false)
		if err != nil {
			return models.Stats{}, fmt.Errorf("start_date: %w", err)
		}
		start = &t
	}
	if params.EndDate != "" {
		t, err := parseDateBound(params.EndDate, true)
		if err != nil {
			return models.Stats{}, fmt.Errorf("end_date: %w", err)
		}
		end = &t
	}

	groupBy := params.GroupBy
	var keyOf func(models.ConfirmationRecord) string
	switch groupBy {
	case "", GroupByConfirmationType:
		groupBy = GroupByConfirmationType
		keyOf = func(r models.ConfirmationRecord) string { return string(r.ConfirmationType) }
	case GroupBySuccess:
		keyOf = func(r models.ConfirmationRecord) string {
			if r.Success {
				return "Success"
			}
			return "Failed"
		}
	case GroupByHour:
		// hour in the timestamp's own zone, so "10:15:00Z" always
		// lands in "10:00" regardless of where the process runs
		keyOf = func(r models.ConfirmationRecord) string {
			t, err := r.Time()
			if err != nil {
				return "unknown"
			}
			return fmt.Sprintf("%02d:00", t.Hour())
		}
	case GroupByDay:
		keyOf = func(r models.ConfirmationRecord) string {
			t, err := r.Time()
			if err != nil {
				return "unknown"
			}
			return t.UTC().Format("2006-01-02")
		}
	default:
		return models.Stats{}, fmt.Errorf("unsupported group_by %q", params.GroupBy)
	}

	stats := models.Stats{GroupBy: groupBy}
	type bucket struct {
		count   int
		success int
		totalMs int64
	}
	buckets := make(map[string]*bucket)

	var totalMs int64
	for _, rec := range records {
		if start != nil || end != nil {
			t, err := rec.Time()
			if err != nil {
				continue
			}
			if start != nil && t.Before(*start) {
				continue
			}
			if end != nil && t.After(*end) {
				continue
			}
		}

		stats.Total++
		if rec.Success {
			stats.Success++
		}
		if rec.TimedOut() {
			stats.TimedOut++
		}
		totalMs += rec.ResponseTimeMs
		if stats.Total == 1 || rec.ResponseTimeMs < stats.MinResponseTimeMs {
			stats.MinResponseTimeMs = rec.ResponseTimeMs
		}
		if rec.ResponseTimeMs > stats.MaxResponseTimeMs {
			stats.MaxResponseTimeMs = rec.ResponseTimeMs
		}

		key := keyOf(rec)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		if rec.Success {
			b.success++
		}
		b.totalMs += rec.ResponseTimeMs
	}

	stats.Failed = stats.Total - stats.Success
	if stats.Total > 0 {
		stats.AvgResponseTimeMs = round1(float64(totalMs) / float64(stats.Total))
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := buckets[k]
		stats.Groups = append(stats.Groups, models.GroupStat{
			Key:               k,
			Count:             b.count,
			SuccessRate:       round1(float64(b.success) / float64(b.count) * 100),
			AvgResponseTimeMs: round1(float64(b.totalMs) / float64(b.count)),
		})
	}
	return stats, nil
}

// Stats loads the log and aggregates it.
func (r *Reader) Stats(params models.StatsParams) (models.Stats, error) {
	records, err := r.Load()
	if err != nil {
		return models.Stats{}, err
	}
	return Analyze(records, params)
}

// round1 keeps one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
