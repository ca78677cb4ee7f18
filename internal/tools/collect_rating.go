package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parley-mcp/parley/internal/config"
	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/models"
)

// CollectRatingTool asks the user for a numeric rating on a bounded
// scale, with an optional free-text comment.
type CollectRatingTool struct {
	engine *elicit.Engine
}

func NewCollectRatingTool(engine *elicit.Engine) *CollectRatingTool {
	return &CollectRatingTool{engine: engine}
}

func (t *CollectRatingTool) Definition() mcp.Tool {
	return mcp.NewTool("collect_rating",
		mcp.WithDescription("Ask the user to rate something on a numeric scale. Useful for quick feedback on a result or an experience."),
		mcp.WithString("subject",
			mcp.Description("What is being rated"),
			mcp.Required(),
		),
		mcp.WithNumber("min",
			mcp.Description("Lowest value on the scale"),
			mcp.DefaultNumber(1),
		),
		mcp.WithNumber("max",
			mcp.Description("Highest value on the scale"),
			mcp.DefaultNumber(5),
		),
		mcp.WithString("comment_prompt",
			mcp.Description("Label for the optional comment field"),
		),
	)
}

func (t *CollectRatingTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := BuildCollectRating(request.GetArguments())
	outcome, err := t.engine.Send(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collect_rating failed: %v", err)), nil
	}

	switch outcome.Action {
	case models.ActionAccept:
		n, ok := contentNumber(outcome, "rating")
		if !ok {
			return mcp.NewToolResultText("The user accepted but provided no rating."), nil
		}
		reply := fmt.Sprintf("The user gave a rating of %d", int(n))
		if f, found := schemaField(req.Schema, "rating"); found && f.Maximum != nil {
			reply = fmt.Sprintf("The user gave a rating of %d out of %d", int(n), int(*f.Maximum))
		}
		if c := contentString(outcome, "comment"); c != "" {
			reply += ". Comment: " + c
		} else {
			reply += "."
		}
		return mcp.NewToolResultText(reply), nil
	case models.ActionDecline:
		return mcp.NewToolResultText("The user declined to give a rating."), nil
	default:
		return mcp.NewToolResultText("The rating request was cancelled."), nil
	}
}

// BuildCollectRating constructs the elicitation request for a rating.
// An inverted or degenerate scale resets to 1..5.
func BuildCollectRating(args map[string]any) models.ElicitationRequest {
	subject := argString(args, "subject")
	min := argInt(args, "min", 1)
	max := argInt(args, "max", 5)
	if min >= max {
		min, max = 1, 5
	}

	commentPrompt := optString(args, "comment_prompt")
	if commentPrompt == "" {
		commentPrompt = "Optional comment"
	}

	lo, hi := float64(min), float64(max)
	return models.ElicitationRequest{
		Message: fmt.Sprintf("Please rate %s on a scale of %d to %d.", subject, min, max),
		Schema: models.Schema{
			Fields: []models.Field{
				{
					Name:        "rating",
					Type:        models.FieldInteger,
					Description: fmt.Sprintf("Rating from %d to %d", min, max),
					Minimum:     &lo,
					Maximum:     &hi,
				},
				{Name: "comment", Type: models.FieldString, Description: commentPrompt},
			},
			Required: []string{"rating"},
		},
		TimeoutMs: config.RatingTimeoutMs,
	}
}
