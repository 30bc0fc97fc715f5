// Package cmd provides CLI commands for Scribe.
//
// Commands:
//   - serve: HTTP API server with SSE chat streaming
//   - migrate: apply pending database migrations and exit
//   - version: show version and configuration
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/scribe-chat/scribe/internal/log"
)

// Version information (injected at build time via ldflags).
var (
	Version   = "development"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Execute is the main entry point for the Scribe application.
func Execute() error {
	logger := newLogger()

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe(logger)
	case "migrate":
		return runMigrate(logger)
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// newLogger builds the root logger. DEBUG enables debug level,
// SCRIBE_LOG_JSON switches to JSON output for log shippers.
func newLogger() log.Logger {
	cfg := log.Config{}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	if os.Getenv("SCRIBE_LOG_JSON") != "" {
		cfg.JSON = true
	}
	return log.New(cfg)
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Scribe - chat persistence and streaming server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  scribe serve [addr]  Start HTTP API server (default: 127.0.0.1:8080)")
	fmt.Println("  scribe migrate       Apply pending database migrations")
	fmt.Println("  scribe version       Show version information")
	fmt.Println("  scribe --help        Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY       Gemini API key (default provider)")
	fmt.Println("  OPENAI_API_KEY       OpenAI API key (provider: openai)")
	fmt.Println("  DATABASE_URL         Postgres URL, overrides config file")
	fmt.Println("  DEBUG                Enable debug logging")
	fmt.Println()
	fmt.Println("Configuration file: ~/.scribe/config.yaml")
}
