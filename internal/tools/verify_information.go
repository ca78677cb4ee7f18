package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// VerifyInformationTool asks the user to check a statement for
// accuracy and supply corrections when it is wrong.
type VerifyInformationTool struct {
	engine           *elicit.Engine
	defaultTimeoutMs int
}

func NewVerifyInformationTool(engine *elicit.Engine, defaultTimeoutMs int) *VerifyInformationTool {
	return &VerifyInformationTool{engine: engine, defaultTimeoutMs: defaultTimeoutMs}
}

func (t *VerifyInformationTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_information",
		mcp.WithDescription("Ask the user to verify a piece of information before relying on it. The user marks it accurate or supplies corrections."),
		mcp.WithString("information",
			mcp.Description("The statement to verify"),
			mcp.Required(),
		),
		mcp.WithString("context",
			mcp.Description("Where the information came from or why it matters"),
		),
	)
}

func (t *VerifyInformationTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildVerifyInformation(request.GetArguments(), t.defaultTimeoutMs)
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("verify_information failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		if contentBool(outcome, "accurate") {
			return mcp.NewToolResultText("The user verified the information as accurate."), nil
		}
		reply := "The user flagged the information as inaccurate."
		if c := contentString(outcome, "corrections"); c != "" {
			reply += " Corrections: " + c
		}
		return mcp.NewToolResultText(reply), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to verify the information."), nil
	default:
		return mcp.NewToolResultText("The verification request was cancelled."), nil
	}
}

// BuildVerifyInformation constructs the elicitation request for an
// accuracy check.
func BuildVerifyInformation(args map[string]any, defaultTimeoutMs int) models.ElicitationRequest {
	msg := "Please verify the following information:\n\n" + argString(args, "information")
	if c := optString(args, "context"); c != "" {
		msg += "\n\nContext: " + c
	}

	return models.ElicitationRequest{
		Message: msg,
		Schema: models.Schema{
			Fields: []models.Field{
				{Name: "accurate", Type: models.FieldBoolean, Description: "Is the information accurate?"},
				{Name: "corrections", Type: models.FieldString, Description: "What is wrong and what it should be"},
			},
			Required: []string{"accurate"},
		},
		TimeoutMs: defaultTimeoutMs,
	}
}
