package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/parley-mcp/parley/internal/models"
)

// sessionChannel carries elicitation requests to the user over the MCP
// session attached to the tool-call context. The client answers with
// one of accept, decline or cancel; anything else normalizes to
// cancel so downstream code only sees the three protocol actions.
type sessionChannel struct {
	mcp *mcpserver.MCPServer
}

func newSessionChannel(m *mcpserver.MCPServer) *sessionChannel {
	return &sessionChannel{mcp: m}
}

func (c *sessionChannel) Elicit(ctx context.Context, req models.ElicitationRequest) (models.Outcome, error) {
	result, err := c.mcp.RequestElicitation(ctx, mcp.ElicitationRequest{
		Params: mcp.ElicitationParams{
			Message:         req.Message,
			RequestedSchema: req.Schema.PropertyMap(),
		},
	})
	if err != nil {
		return models.Outcome{}, fmt.Errorf("session elicitation: %w", err)
	}

	outcome := models.Outcome{Action: normalizeAction(string(result.Action))}
	if outcome.Action == models.ActionAccept {
		outcome.Content, _ = result.Content.(map[string]any)
	}
	return outcome, nil
}

func normalizeAction(action string) models.Action {
	switch a := models.Action(action); a {
	case models.ActionAccept, models.ActionDecline, models.ActionCancel:
		return a
	}
	return models.ActionCancel
}
