package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/config"
	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// AskYesNoTool asks the user a single yes/no question.
type AskYesNoTool struct {
	engine *elicit.Engine
}

func NewAskYesNoTool(engine *elicit.Engine) *AskYesNoTool {
	return &AskYesNoTool{engine: engine}
}

func (t *AskYesNoTool) Definition() mcp.Tool {
	return mcp.NewTool("ask_yes_no",
		mcp.WithDescription("Ask the user a simple yes/no question. Prefer this over ask_question when a boolean answer is all you need."),
		mcp.WithString("question",
			mcp.Description("The question to ask"),
			mcp.Required(),
		),
		mcp.WithString("context",
			mcp.Description("Background that helps the user answer"),
		),
	)
}

func (t *AskYesNoTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildAskYesNo(request.GetArguments())
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask_yes_no failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		if contentBool(outcome, "answer") {
			return mcp.NewToolResultText("The user answered: yes"), nil
		}
		return mcp.NewToolResultText("The user answered: no"), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to answer the question."), nil
	default:
		return mcp.NewToolResultText("The question was cancelled."), nil
	}
}

// BuildAskYesNo constructs the elicitation request for a yes/no
// question. The message carries a "(yes/no)" suffix so the exchange is
// categorized as yes_no in the log.
func BuildAskYesNo(args map[string]any) models.ElicitationRequest {
	msg := argString(args, "question") + " (yes/no)"
	if c := optString(args, "context"); c != "" {
		msg = c + "\n\n" + msg
	}

	return models.ElicitationRequest{
		Message: msg,
		Schema: models.Schema{
			Fields: []models.Field{
				{Name: "answer", Type: models.FieldBoolean, Description: "Yes (true) or no (false)"},
			},
			Required: []string{"answer"},
		},
		TimeoutMs: config.YesNoTimeoutMs,
	}
}
