// Package app provides application initialization and dependency wiring.
//
// App is the composition root: it connects tracing, the database pool,
// Genkit, the chat store and the model generator, and owns their
// shutdown order.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scribe-chat/scribe/internal/chat"
	"github.com/scribe-chat/scribe/internal/config"
	"github.com/scribe-chat/scribe/internal/llm"
)

const closeTimeout = 5 * time.Second

// App is the core application container.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Genkit    *genkit.Genkit
	Pool      *pgxpool.Pool
	Store     *chat.Store
	Generator *llm.Generator

	otelShutdown func(context.Context) error
}

// Close gracefully shuts down all resources in reverse setup order.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.Pool != nil {
		a.Pool.Close()
		a.Logger.Debug("database pool closed")
	}

	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}

	return nil
}
