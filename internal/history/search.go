package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parley-mcp/parley/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter is the predicate set applied to loaded records. Zero values
// mean "no constraint"; pointer fields distinguish false from unset.
// A record passes only when it satisfies every set predicate.
type Filter struct {
	Keyword          string
	ConfirmationType string
	Start            *time.Time
	End              *time.Time
	Success          *bool
	TimedOut         *bool
	MinResponseTime  *int64
	MaxResponseTime  *int64
}

// FilterFromParams parses the wire-level search parameters.
func FilterFromParams(params models.SearchParams) (Filter, error) {
	f := Filter{
		Keyword:          params.Keyword,
		ConfirmationType: params.ConfirmationType,
		Success:          params.Success,
		TimedOut:         params.TimedOut,
		MinResponseTime:  params.MinResponseTime,
		MaxResponseTime:  params.MaxResponseTime,
	}
	if params.StartDate != "" {
		t, err := parseDateBound(params.StartDate, false)
		if err != nil {
			return Filter{}, fmt.Errorf("start_date: %w", err)
		}
		f.Start = &t
	}
	if params.EndDate != "" {
		t, err := parseDateBound(params.EndDate, true)
		if err != nil {
			return Filter{}, fmt.Errorf("end_date: %w", err)
		}
		f.End = &t
	}
	return f, nil
}

// parseDateBound accepts RFC 3339 timestamps or bare dates. A bare
// end date extends to the last instant of that day so the bound stays
// inclusive.
func parseDateBound(value string, end bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want RFC 3339 or YYYY-MM-DD)", value)
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// Matches reports whether one record passes every set predicate.
func (f Filter) Matches(rec models.ConfirmationRecord) bool {
	if f.ConfirmationType != "" && string(rec.ConfirmationType) != f.ConfirmationType {
		return false
	}
	if f.Success != nil && rec.Success != *f.Success {
		return false
	}
	if f.TimedOut != nil && rec.TimedOut() != *f.TimedOut {
		return false
	}
	if f.MinResponseTime != nil && rec.ResponseTimeMs < *f.MinResponseTime {
		return false
	}
	if f.MaxResponseTime != nil && rec.ResponseTimeMs > *f.MaxResponseTime {
		return false
	}
	if f.Start != nil || f.End != nil {
		t, err := rec.Time()
		if err != nil {
			return false
		}
		if f.Start != nil && t.Before(*f.Start) {
			return false
		}
		if f.End != nil && t.After(*f.End) {
			return false
		}
	}
	if f.Keyword != "" {
		resp, err := json.Marshal(rec.Response)
		if err != nil {
			return false
		}
		haystack := strings.ToLower(rec.Request.Message + string(resp))
		if !strings.Contains(haystack, strings.ToLower(f.Keyword)) {
			return false
		}
	}
	return true
}

// Apply filters records and orders them newest first. The sort is
// stable, so records sharing a timestamp keep their on-disk order.
func (f Filter) Apply(records []models.ConfirmationRecord) []models.ConfirmationRecord {
	type keyed struct {
		rec models.ConfirmationRecord
		at  time.Time
	}
	var matched []keyed
	for _, rec := range records {
		if !f.Matches(rec) {
			continue
		}
		// a record with an unparseable timestamp sorts last
		at, _ := rec.Time()
		matched = append(matched, keyed{rec: rec, at: at})
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].at.After(matched[j].at)
	})
	out := make([]models.ConfirmationRecord, len(matched))
	for i, k := range matched {
		out[i] = k.rec
	}
	return out
}

// Paginate slices one page out of a filtered set. Pages are 1-based
// and a non-positive page clamps to the first; a page past the end
// yields an empty page, not an error.
func Paginate(records []models.ConfirmationRecord, page, pageSize int) models.SearchResult {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	entries := []models.ConfirmationRecord{}
	if start := (page - 1) * pageSize; start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		entries = records[start:end]
	}

	return models.SearchResult{
		Entries:     entries,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
	}
}

// Search loads the log and returns one page of matching records.
func (r *Reader) Search(params models.SearchParams) (models.SearchResult, error) {
	filter, err := FilterFromParams(params)
	if err != nil {
		return models.SearchResult{}, err
	}
	records, err := r.Load()
	if err != nil {
		return models.SearchResult{}, err
	}
	return Paginate(filter.Apply(records), params.Page, params.PageSize), nil
}
