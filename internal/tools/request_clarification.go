package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// RequestClarificationTool asks the user to resolve an ambiguity,
// optionally offering a bounded set of choices.
type RequestClarificationTool struct {
	engine           *elicit.Engine
	defaultTimeoutMs int
}

func NewRequestClarificationTool(engine *elicit.Engine, defaultTimeoutMs int) *RequestClarificationTool {
	return &RequestClarificationTool{engine: engine, defaultTimeoutMs: defaultTimeoutMs}
}

func (t *RequestClarificationTool) Definition() mcp.Tool {
	return mcp.NewTool("request_clarification",
		mcp.WithDescription("Ask the user to clarify an ambiguous instruction. Pass options when a bounded set of interpretations exists; the user picks one and may elaborate."),
		mcp.WithString("question",
			mcp.Description("What needs clarifying"),
			mcp.Required(),
		),
		mcp.WithArray("options",
			mcp.Description("Candidate interpretations the user can choose between"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("context",
			mcp.Description("Background on why the clarification is needed"),
		),
	)
}

func (t *RequestClarificationTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildRequestClarification(request.GetArguments(), t.defaultTimeoutMs)
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("request_clarification failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		var reply string
		if choice := contentString(outcome, "choice"); choice != "" {
			reply = "The user chose: " + choice
			if details := contentString(outcome, "details"); details != "" {
				reply += ". Details: " + details
			}
		} else if details := contentString(outcome, "details"); details != "" {
			reply = "The user clarified: " + details
		} else {
			reply = "The user accepted but provided no clarification."
		}
		return mcp.NewToolResultText(reply), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to clarify."), nil
	default:
		return mcp.NewToolResultText("The clarification request was cancelled."), nil
	}
}

// BuildRequestClarification constructs the elicitation request for a
// clarification. When options are present the selection field comes
// before the free-text field, so a client asks "which one" first.
func BuildRequestClarification(args map[string]any, defaultTimeoutMs int) models.ElicitationRequest {
	question := argString(args, "question")
	options := argStringSlice(args, "options")

	msg := "Please clarify: " + question
	if c := optString(args, "context"); c != "" {
		msg += "\n\nContext: " + c
	}
	if len(options) > 0 {
		msg += "\n\nOptions:"
		for _, opt := range options {
			msg += "\n- " + opt
		}
	}

	var schema models.Schema
	if len(options) > 0 {
		schema = models.Schema{
			Fields: []models.Field{
				{Name: "choice", Type: models.FieldString, Description: "Pick one of the options", Enum: options},
				{Name: "details", Type: models.FieldString, Description: "Optional elaboration"},
			},
			Required: []string{"choice"},
		}
	} else {
		schema = models.Schema{
			Fields: []models.Field{
				{Name: "details", Type: models.FieldString, Description: "Your clarification"},
			},
			Required: []string{"details"},
		}
	}

	return models.ElicitationRequest{
		Message:   msg,
		Schema:    schema,
		TimeoutMs: defaultTimeoutMs,
	}
}
