package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/history"
	"github.com/parley-mcp/parley/internal/models"
)

// HistoryTool searches the confirmation log.
type HistoryTool struct {
	reader *history.Reader
}

func NewHistoryTool(reader *history.Reader) *HistoryTool {
	return &HistoryTool{reader: reader}
}

func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_confirmation_history",
		mcp.WithDescription("Search past confirmation exchanges. All filters are optional and combine with AND; results come back newest first."),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive text matched against the request message and the response"),
		),
		mcp.WithString("confirmation_type",
			mcp.Description("Only entries of this category"),
			mcp.Enum("confirmation", "rating", "clarification", "verification", "yes_no", "custom"),
		),
		mcp.WithString("start_date",
			mcp.Description("Inclusive lower bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithString("end_date",
			mcp.Description("Inclusive upper bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithBoolean("success",
			mcp.Description("Only entries whose channel call succeeded, or failed when false"),
		),
		mcp.WithBoolean("timed_out",
			mcp.Description("Only entries that timed out, or that did not when false"),
		),
		mcp.WithNumber("min_response_time",
			mcp.Description("Inclusive lower bound on response time in milliseconds"),
			mcp.Min(0),
		),
		mcp.WithNumber("max_response_time",
			mcp.Description("Inclusive upper bound on response time in milliseconds"),
			mcp.Min(0),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
			mcp.Min(1),
			mcp.DefaultNumber(1),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Entries per page"),
			mcp.Min(1),
			mcp.Max(100),
			mcp.DefaultNumber(10),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *HistoryTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	params := models.SearchParams{
		Keyword:          optString(args, "keyword"),
		ConfirmationType: optString(args, "confirmation_type"),
		StartDate:        optString(args, "start_date"),
		EndDate:          optString(args, "end_date"),
		Page:             argInt(args, "page", 1),
		PageSize:         argInt(args, "page_size", history.DefaultPageSize),
	}
	if v, ok := lookupBool(args, "success"); ok {
		params.Success = &v
	}
	if v, ok := lookupBool(args, "timed_out"); ok {
		params.TimedOut = &v
	}
	if v, ok := lookupInt64(args, "min_response_time"); ok {
		params.MinResponseTime = &v
	}
	if v, ok := lookupInt64(args, "max_response_time"); ok {
		params.MaxResponseTime = &v
	}

	result, err := t.reader.Search(params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_confirmation_history failed: %v", err)), nil
	}
	return mcp.NewToolResultText(FormatSearchResult(result)), nil
}
