package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// ConfirmActionTool asks the user to approve or reject a described
// action before the agent performs it.
type ConfirmActionTool struct {
	engine           *elicit.Engine
	defaultTimeoutMs int
}

func NewConfirmActionTool(engine *elicit.Engine, defaultTimeoutMs int) *ConfirmActionTool {
	return &ConfirmActionTool{engine: engine, defaultTimeoutMs: defaultTimeoutMs}
}

func (t *ConfirmActionTool) Definition() mcp.Tool {
	return mcp.NewTool("confirm_action",
		mcp.WithDescription("Ask the user to confirm an action before performing it. Use this before anything consequential, especially destructive or irreversible operations."),
		mcp.WithString("action",
			mcp.Description("Short description of the action needing confirmation"),
			mcp.Required(),
		),
		mcp.WithString("impact",
			mcp.Description(`What the action will affect, e.g. "delete 3 files" or "restart the service". Destructive wording extends the confirmation window.`),
		),
		mcp.WithString("details",
			mcp.Description("Extra context that helps the user decide"),
		),
	)
}

func (t *ConfirmActionTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildConfirmAction(request.GetArguments(), t.defaultTimeoutMs)
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("confirm_action failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		reply := "Action rejected by the user."
		if contentBool(outcome, "confirmed") {
			reply = "Action confirmed by the user."
		}
		if reason := contentString(outcome, "reason"); reason != "" {
			reply += " Reason: " + reason
		}
		return mcp.NewToolResultText(reply), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to answer the confirmation request. Do not proceed with the action."), nil
	default:
		return mcp.NewToolResultText("The confirmation request was cancelled. Do not proceed with the action."), nil
	}
}

// BuildConfirmAction constructs the elicitation request for an action
// confirmation. The timeout scales with the severity of the impact
// description.
func BuildConfirmAction(args map[string]any, defaultTimeoutMs int) models.ElicitationRequest {
	action := argString(args, "action")
	impact := optString(args, "impact")
	details := optString(args, "details")

	msg := "Please confirm the following action:\n\nAction: " + action
	if impact != "" {
		msg += "\nImpact: " + impact
	}
	if details != "" {
		msg += "\nDetails: " + details
	}
	msg += "\n\nDo you want to proceed?"

	return models.ElicitationRequest{
		Message: msg,
		Schema: models.Schema{
			Fields: []models.Field{
				{Name: "confirmed", Type: models.FieldBoolean, Description: "Approve the action?"},
				{Name: "reason", Type: models.FieldString, Description: "Optional reason for the decision"},
			},
			Required: []string{"confirmed"},
		},
		TimeoutMs: ImpactTimeoutMs(impact, defaultTimeoutMs),
	}
}
