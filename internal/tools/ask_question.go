package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// AskQuestionTool asks the user a free-form question with a single
// typed answer field.
type AskQuestionTool struct {
	engine           *elicit.Engine
	defaultTimeoutMs int
}

func NewAskQuestionTool(engine *elicit.Engine, defaultTimeoutMs int) *AskQuestionTool {
	return &AskQuestionTool{engine: engine, defaultTimeoutMs: defaultTimeoutMs}
}

func (t *AskQuestionTool) Definition() mcp.Tool {
	return mcp.NewTool("ask_question",
		mcp.WithDescription("Ask the user an open question and receive a single typed answer. Use ask_yes_no for boolean questions and request_clarification when offering options."),
		mcp.WithString("question",
			mcp.Description("The question to ask"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Expected answer type"),
			mcp.Enum("string", "number", "integer", "boolean"),
			mcp.DefaultString("string"),
		),
		mcp.WithString("format",
			mcp.Description(`Format hint for string answers, e.g. "email", "uri", "date"`),
		),
		mcp.WithString("default",
			mcp.Description("Default answer to pre-fill; parsed to the expected type"),
		),
		mcp.WithString("context",
			mcp.Description("Background that helps the user answer"),
		),
	)
}

func (t *AskQuestionTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildAskQuestion(request.GetArguments(), t.defaultTimeoutMs)
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask_question failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		if v, ok := outcome.Content["answer"]; ok {
			return mcp.NewToolResultText(fmt.Sprintf("The user answered: %v", v)), nil
		}
		return mcp.NewToolResultText("The user accepted but provided no answer."), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to answer the question."), nil
	default:
		return mcp.NewToolResultText("The question was cancelled."), nil
	}
}

// BuildAskQuestion constructs the elicitation request for an open
// question. Unrecognized type arguments degrade to string; a default
// that cannot represent the answer type is dropped.
func BuildAskQuestion(args map[string]any, defaultTimeoutMs int) models.ElicitationRequest {
	answerType := optString(args, "type")
	switch answerType {
	case models.FieldString, models.FieldNumber, models.FieldInteger, models.FieldBoolean:
	default:
		answerType = models.FieldString
	}

	msg := argString(args, "question")
	if c := optString(args, "context"); c != "" {
		msg += "\n\nContext: " + c
	}

	field := models.Field{
		Name:        "answer",
		Type:        answerType,
		Description: "Your answer",
		Format:      optString(args, "format"),
	}
	if def, ok := coerceTo(answerType, args["default"]); ok {
		field.Default = def
	}

	return models.ElicitationRequest{
		Message: msg,
		Schema: models.Schema{
			Fields:   []models.Field{field},
			Required: []string{"answer"},
		},
		TimeoutMs: defaultTimeoutMs,
	}
}
