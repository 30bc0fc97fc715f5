package cmd

import (
	"fmt"

	"github.com/scribe-chat/scribe/db"
	"github.com/scribe-chat/scribe/internal/config"
	"github.com/scribe-chat/scribe/internal/log"
)

// runMigrate applies pending database migrations and exits.
// The serve command also migrates on startup; this exists for
// deploy pipelines that migrate before rolling the server.
func runMigrate(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	logger.Info("database migrations up to date")
	return nil
}
