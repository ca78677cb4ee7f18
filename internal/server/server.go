package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/parley-mcp/parley/internal/config"
	"github.com/parley-mcp/parley/internal/elicit"
	"github.com/parley-mcp/parley/internal/history"
	"github.com/parley-mcp/parley/internal/tools"
)

const serverName = "parley"

const instructions = `Parley lets you ask the human operator questions while you work.
Use confirm_action before any consequential or destructive operation,
ask_yes_no for quick binary checks, ask_question for free-form input,
request_clarification when instructions are ambiguous, collect_rating
for feedback, and verify_information before relying on uncertain facts.
Every exchange is recorded; get_confirmation_history and
get_confirmation_stats query that record.`

// tool is the shape every entry in the catalog presents to the server.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Server wires the protocol engine, the confirmation log and the tool
// catalog behind one MCP server that can serve stdio or HTTP.
type Server struct {
	cfg     *config.Config
	version string
	mcp     *mcpserver.MCPServer
}

func New(cfg *config.Config, version string) *Server {
	s := &Server{cfg: cfg, version: version}

	s.mcp = mcpserver.NewMCPServer(
		serverName,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(instructions),
	)

	writer := history.NewWriter(cfg.ConfirmationLogPath)
	reader := history.NewReader(cfg.ConfirmationLogPath)
	engine := elicit.NewEngine(newSessionChannel(s.mcp), writer)

	for _, t := range []tool{
		tools.NewConfirmActionTool(engine, cfg.DefaultTimeoutMs),
		tools.NewAskYesNoTool(engine),
		tools.NewAskQuestionTool(engine, cfg.DefaultTimeoutMs),
		tools.NewCollectRatingTool(engine),
		tools.NewRequestClarificationTool(engine, cfg.DefaultTimeoutMs),
		tools.NewVerifyInformationTool(engine, cfg.DefaultTimeoutMs),
		tools.NewHistoryTool(reader),
		tools.NewStatsTool(reader),
	} {
		s.mcp.AddTool(t.Definition(), t.Handle)
	}

	return s
}

// Run serves the given transport until ctx is cancelled. Stdio serves
// a single session on the process pipes; http exposes the streamable
// endpoint plus health on the configured address.
func (s *Server) Run(ctx context.Context, transport string) error {
	switch transport {
	case "stdio":
		return s.runStdio(ctx)
	case "http":
		return s.runHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

func (s *Server) runStdio(ctx context.Context) error {
	log.Info().
		Str("transport", "stdio").
		Str("confirmation_log", s.cfg.ConfirmationLogPath).
		Int("default_timeout_ms", s.cfg.DefaultTimeoutMs).
		Msg("parley listening")

	stdio := mcpserver.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) runHTTP(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:     s.routes(),
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: elicitation streams stay open for up to the
		// longest confirmation window (30 minutes)
		IdleTimeout: 120 * time.Second,
	}

	log.Info().
		Str("transport", "http").
		Str("addr", httpSrv.Addr).
		Str("confirmation_log", s.cfg.ConfirmationLogPath).
		Int("default_timeout_ms", s.cfg.DefaultTimeoutMs).
		Msg("parley listening")

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
