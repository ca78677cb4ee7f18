package tools

import (
	"fmt"
	"strings"

	"github.com/parley-mcp/parley/internal/models"
)

// previewRunes bounds the per-entry message excerpt in history output.
const previewRunes = 100

// FormatSearchResult renders one page of confirmation history as the
// text reply for get_confirmation_history.
func FormatSearchResult(res models.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d confirmation(s)\n", res.TotalCount)
	offset := (res.CurrentPage - 1) * res.PageSize
	for i, rec := range res.Entries {
		fmt.Fprintf(&b, "\n%d. [%s] %s | %s | %d ms\n",
			offset+i+1, rec.Timestamp, rec.ConfirmationType, recordStatus(rec), rec.ResponseTimeMs)
		fmt.Fprintf(&b, "   %s\n", preview(rec.Request.Message))
		if rec.Error != "" {
			fmt.Fprintf(&b, "   error: %s\n", rec.Error)
		}
	}
	fmt.Fprintf(&b, "\nPage %d of %d (%d total)", res.CurrentPage, res.TotalPages, res.TotalCount)
	return b.String()
}

// FormatStats renders aggregate statistics as the text reply for
// get_confirmation_stats.
func FormatStats(stats models.Stats) string {
	var b strings.Builder
	b.WriteString("Confirmation statistics\n\n")
	fmt.Fprintf(&b, "Total: %d\n", stats.Total)
	fmt.Fprintf(&b, "Success: %d\n", stats.Success)
	fmt.Fprintf(&b, "Failed: %d\n", stats.Failed)
	fmt.Fprintf(&b, "Timed out: %d\n", stats.TimedOut)
	fmt.Fprintf(&b, "Response time: avg %.1f ms, min %d ms, max %d ms\n",
		stats.AvgResponseTimeMs, stats.MinResponseTimeMs, stats.MaxResponseTimeMs)
	if len(stats.Groups) > 0 {
		fmt.Fprintf(&b, "\nBy %s:\n", stats.GroupBy)
		for _, g := range stats.Groups {
			fmt.Fprintf(&b, "  %s: %d (%.1f%% success, avg %.1f ms)\n",
				g.Key, g.Count, g.SuccessRate, g.AvgResponseTimeMs)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func recordStatus(rec models.ConfirmationRecord) string {
	if !rec.Success {
		return "failed"
	}
	return string(rec.Response.Action)
}

// preview flattens a message to one line and truncates it to a bounded
// number of runes, so multibyte prompts cut cleanly.
func preview(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	runes := []rune(msg)
	if len(runes) <= previewRunes {
		return msg
	}
	return string(runes[:previewRunes]) + "..."
}

// contentBool reads a boolean field from an accepted outcome.
func contentBool(outcome models.Outcome, key string) bool {
	v, _ := outcome.Content[key].(bool)
	return v
}

// contentString reads a string field from an accepted outcome.
func contentString(outcome models.Outcome, key string) string {
	s, _ := outcome.Content[key].(string)
	return strings.TrimSpace(s)
}

// contentNumber reads a numeric field from an accepted outcome,
// reporting whether one was present.
func contentNumber(outcome models.Outcome, key string) (float64, bool) {
	switch v := outcome.Content[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// schemaField looks up a schema field by name.
func schemaField(s models.Schema, name string) (models.Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return models.Field{}, false
}
