// Command parley is an MCP server whose tools let an AI agent put
// questions to the human operator: confirmations before destructive
// actions, yes/no checks, free-form questions, clarifications, ratings
// and fact verification. Every exchange lands in an append-only
// confirmation log that two further tools search and summarize.
//
// Usage:
//
//	parley                      # stdio transport, for MCP client configs
//	parley --transport http     # streamable HTTP on PARLEY_HOST:PARLEY_PORT
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parley-mcp/parley/internal/config"
	"github.com/parley-mcp/parley/internal/server"
)

const version = "1.0.0"

// CLI defines the command-line interface. Most settings come from the
// environment; flags cover what changes between MCP client setups.
type CLI struct {
	Transport string           `help:"Transport to serve on." enum:"stdio,http" default:"stdio"`
	LogLevel  string           `help:"Log level (debug, info, warn, error). Overrides PARLEY_LOG_LEVEL."`
	Debug     bool             `help:"Enable debug logging."`
	Version   kong.VersionFlag `help:"Show version and exit."`
}

func main() {
	_ = godotenv.Load()

	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("parley"),
		kong.Description("MCP server that lets AI agents ask a human before acting."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.Debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	if err := server.New(cfg, version).Run(ctx, cli.Transport); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogging routes all logs to stderr; stdout belongs to the
// protocol when serving stdio.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Environment == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
