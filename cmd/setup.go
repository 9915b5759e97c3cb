package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/shared"
)

// SetupDatabase creates the database and runs migrations, or with --rollback reverts the latest migration.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if !r.config.Database.Enabled {
		return fmt.Errorf("%w: set database.enabled = true in the config", shared.ErrDatabaseDisabled)
	}

	if cmd.Bool("rollback") {
		return r.rollbackDatabase()
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	if _, err := r.database(); err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// rollbackDatabase reverts the most recent migration without applying pending ones first.
func (r *Runner) rollbackDatabase() error {
	db := r.db
	if db == nil {
		opened, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return err
		}
		defer opened.Close()
		db = opened
	}

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back database: %w", err)
	}

	r.logger.Info("rolled back latest migration", "path", r.config.Database.Path)
	return r.writePlain("Rolled back latest migration\n")
}

// SetupConfig writes the example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = defaultConfigPath
	}

	if cmd.Bool("force") {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to replace config file: %w", err)
		}
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("Wrote %s\n", path)
}
