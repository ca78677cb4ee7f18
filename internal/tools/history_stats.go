package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/history"
	"github.com/parley-mcp/parley/internal/models"
)

// StatsTool aggregates the confirmation log into summary statistics.
type StatsTool struct {
	reader *history.Reader
}

func NewStatsTool(reader *history.Reader) *StatsTool {
	return &StatsTool{reader: reader}
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_confirmation_stats",
		mcp.WithDescription("Summarize the confirmation log: totals, success and timeout counts, response times, and a group-by breakdown."),
		mcp.WithString("start_date",
			mcp.Description("Inclusive lower bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithString("end_date",
			mcp.Description("Inclusive upper bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithString("group_by",
			mcp.Description("Breakdown dimension"),
			mcp.Enum("confirmationType", "success", "hour", "day"),
			mcp.DefaultString("confirmationType"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *StatsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	stats, err := t.reader.Stats(models.StatsParams{
		StartDate: optString(args, "start_date"),
		EndDate:   optString(args, "end_date"),
		GroupBy:   optString(args, "group_by"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_confirmation_stats failed: %v", err)), nil
	}
	return mcp.NewToolResultText(FormatStats(stats)), nil
}
