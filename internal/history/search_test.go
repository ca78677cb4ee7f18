package history_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/parley-mcp/parley/internal/history"
	"github.com/parley-mcp/parley/internal/models"
)

func mkSearchRecord(ts string, ct models.ConfirmationType, msg string, success bool, errText string, ms int64) models.ConfirmationRecord {
	rec := models.ConfirmationRecord{
		Timestamp:        ts,
		ConfirmationType: ct,
		Request:          models.ElicitationRequest{Message: msg, TimeoutMs: 30000},
		Response:         models.Outcome{Action: models.ActionAccept},
		ResponseTimeMs:   ms,
		Success:          success,
	}
	if !success {
		rec.Response = models.Outcome{Action: models.ActionCancel}
		rec.Error = errText
	}
	return rec
}

func searchFixture() []models.ConfirmationRecord {
	docsRating := mkSearchRecord("2026-08-21T07:30:00Z", models.TypeRating, "Please rate the docs", true, "", 500)
	docsRating.Response.Content = map[string]any{"rating": 4, "comment": "Great SEARCHWORD"}
	return []models.ConfirmationRecord{
		mkSearchRecord("2026-08-18T09:00:00Z", models.TypeConfirmation, "Please confirm the deploy", true, "", 400),
		mkSearchRecord("2026-08-19T10:15:00Z", models.TypeRating, "Please rate the assistant", true, "", 900),
		mkSearchRecord("2026-08-19T23:59:59Z", models.TypeYesNo, "Continue? (yes/no)", true, "", 150),
		mkSearchRecord("2026-08-20T08:00:00Z", models.TypeConfirmation, "Please confirm deletion", false, "elicitation timed out after 30000ms", 30000),
		mkSearchRecord("2026-08-20T12:00:00Z", models.TypeVerification, "Please verify the address", false, "session closed", 2000),
		docsRating,
		mkSearchRecord("2026-08-21T09:00:00Z", models.TypeRating, "rate the latency", false, "elicitation timed out after 20000ms", 20000),
	}
}

// ─── Filtering ────────────────────────────────────────────────────────────────

func TestFilterAndComposition(t *testing.T) {
	succ := true

	byType := history.Filter{ConfirmationType: "rating"}
	if got := len(byType.Apply(searchFixture())); got != 3 {
		t.Fatalf("type filter alone: got %d, want 3", got)
	}
	bySuccess := history.Filter{Success: &succ}
	if got := len(bySuccess.Apply(searchFixture())); got != 4 {
		t.Fatalf("success filter alone: got %d, want 4", got)
	}

	both := history.Filter{ConfirmationType: "rating", Success: &succ}
	out := both.Apply(searchFixture())
	if len(out) != 2 {
		t.Fatalf("combined filter: got %d, want 2", len(out))
	}
	for _, rec := range out {
		if rec.ConfirmationType != models.TypeRating || !rec.Success {
			t.Errorf("record %q violates a predicate", rec.Request.Message)
		}
	}
}

func TestFilterKeywordMatchesMessage(t *testing.T) {
	out := history.Filter{Keyword: "DELETION"}.Apply(searchFixture())
	if len(out) != 1 || out[0].Request.Message != "Please confirm deletion" {
		t.Errorf("keyword should match message case-insensitively, got %d records", len(out))
	}
}

func TestFilterKeywordMatchesResponseContent(t *testing.T) {
	out := history.Filter{Keyword: "searchword"}.Apply(searchFixture())
	if len(out) != 1 || out[0].Request.Message != "Please rate the docs" {
		t.Errorf("keyword should match serialized response, got %d records", len(out))
	}
}

func TestFilterTimedOut(t *testing.T) {
	yes, no := true, false

	out := history.Filter{TimedOut: &yes}.Apply(searchFixture())
	if len(out) != 2 {
		t.Fatalf("timedOut=true: got %d, want 2", len(out))
	}
	for _, rec := range out {
		if !rec.TimedOut() {
			t.Errorf("record %q has no timeout marker", rec.Request.Message)
		}
	}

	out = history.Filter{TimedOut: &no}.Apply(searchFixture())
	if len(out) != 5 {
		t.Errorf("timedOut=false: got %d, want 5", len(out))
	}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	f, err := history.FilterFromParams(models.SearchParams{
		StartDate: "2026-08-19T10:15:00Z",
		EndDate:   "2026-08-19",
	})
	if err != nil {
		t.Fatalf("FilterFromParams: %v", err)
	}
	out := f.Apply(searchFixture())
	// the start bound keeps the record at exactly that instant and
	// the bare end date covers 23:59:59 of the same day
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
}

func TestFilterResponseTimeBoundsInclusive(t *testing.T) {
	min, max := int64(400), int64(900)
	out := history.Filter{MinResponseTime: &min, MaxResponseTime: &max}.Apply(searchFixture())
	if len(out) != 3 {
		t.Errorf("got %d records, want 3 (bounds are closed)", len(out))
	}
}

func TestFilterInvalidDateRejected(t *testing.T) {
	if _, err := history.FilterFromParams(models.SearchParams{StartDate: "yesterday"}); err == nil {
		t.Error("invalid start_date must error")
	}
	if _, err := history.FilterFromParams(models.SearchParams{EndDate: "2026-13-45"}); err == nil {
		t.Error("invalid end_date must error")
	}
}

// ─── Ordering ─────────────────────────────────────────────────────────────────

func TestApplySortsNewestFirst(t *testing.T) {
	out := history.Filter{}.Apply(searchFixture())
	if len(out) != 7 {
		t.Fatalf("got %d records, want 7", len(out))
	}
	if out[0].Request.Message != "rate the latency" {
		t.Errorf("newest record first, got %q", out[0].Request.Message)
	}
	for i := 1; i < len(out); i++ {
		prev, _ := out[i-1].Time()
		cur, _ := out[i].Time()
		if prev.Before(cur) {
			t.Errorf("records out of order at index %d", i)
		}
	}
}

func TestApplyStableOnEqualTimestamps(t *testing.T) {
	records := []models.ConfirmationRecord{
		mkSearchRecord("2026-08-20T10:00:00Z", models.TypeCustom, "first on disk", true, "", 10),
		mkSearchRecord("2026-08-20T10:00:00Z", models.TypeCustom, "second on disk", true, "", 20),
	}
	out := history.Filter{}.Apply(records)
	if out[0].Request.Message != "first on disk" || out[1].Request.Message != "second on disk" {
		t.Errorf("equal timestamps must keep on-disk order: %q, %q",
			out[0].Request.Message, out[1].Request.Message)
	}
}

// ─── Pagination ───────────────────────────────────────────────────────────────

func TestPaginate(t *testing.T) {
	records := make([]models.ConfirmationRecord, 25)
	for i := range records {
		records[i] = testRecord(fmt.Sprintf("msg %d", i))
	}

	res := history.Paginate(records, 1, 10)
	if res.TotalCount != 25 || res.TotalPages != 3 || len(res.Entries) != 10 {
		t.Errorf("page 1: total=%d pages=%d entries=%d", res.TotalCount, res.TotalPages, len(res.Entries))
	}

	res = history.Paginate(records, 3, 10)
	if len(res.Entries) != 5 {
		t.Errorf("last page: entries=%d, want 5", len(res.Entries))
	}

	sum := 0
	for page := 1; page <= res.TotalPages; page++ {
		sum += len(history.Paginate(records, page, 10).Entries)
	}
	if sum != 25 {
		t.Errorf("entries across pages sum to %d, want 25", sum)
	}
}

func TestPaginateEdgeCases(t *testing.T) {
	records := make([]models.ConfirmationRecord, 5)
	for i := range records {
		records[i] = testRecord(fmt.Sprintf("msg %d", i))
	}

	tests := []struct {
		name        string
		page        int
		pageSize    int
		wantPage    int
		wantSize    int
		wantEntries int
	}{
		{"page beyond range is empty", 99, 10, 99, 10, 0},
		{"zero page clamps to first", 0, 10, 1, 10, 5},
		{"negative page clamps to first", -3, 10, 1, 10, 5},
		{"zero size defaults", 1, 0, 1, history.DefaultPageSize, 5},
		{"oversize clamps", 1, 500, 1, history.MaxPageSize, 5},
		{"size one", 3, 1, 3, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := history.Paginate(records, tt.page, tt.pageSize)
			if res.CurrentPage != tt.wantPage || res.PageSize != tt.wantSize || len(res.Entries) != tt.wantEntries {
				t.Errorf("got page=%d size=%d entries=%d, want page=%d size=%d entries=%d",
					res.CurrentPage, res.PageSize, len(res.Entries),
					tt.wantPage, tt.wantSize, tt.wantEntries)
			}
		})
	}
}

func TestPaginateEmptySet(t *testing.T) {
	res := history.Paginate(nil, 1, 10)
	if res.TotalCount != 0 || res.TotalPages != 0 || len(res.Entries) != 0 {
		t.Errorf("empty set: %+v", res)
	}
}

// ─── End to end ───────────────────────────────────────────────────────────────

func TestSearchEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confirmations.jsonl")
	w := history.NewWriter(path)
	for _, rec := range searchFixture() {
		w.Append(rec)
	}
	r := history.NewReader(path)

	succ := true
	res, err := r.Search(models.SearchParams{Success: &succ, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.TotalCount != 4 || res.TotalPages != 2 {
		t.Errorf("total=%d pages=%d, want 4 and 2", res.TotalCount, res.TotalPages)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(res.Entries))
	}
	if res.Entries[0].Request.Message != "Please rate the docs" {
		t.Errorf("newest successful record first, got %q", res.Entries[0].Request.Message)
	}
}

func TestSearchInvalidDate(t *testing.T) {
	r := history.NewReader(filepath.Join(t.TempDir(), "x.jsonl"))
	if _, err := r.Search(models.SearchParams{StartDate: "not-a-date"}); err == nil {
		t.Error("invalid start_date must error")
	}
}
