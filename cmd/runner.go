package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/controller"
	"github.com/desertthunder/jamx/internal/repositories"
	"github.com/desertthunder/jamx/internal/services"
	"github.com/desertthunder/jamx/internal/shared"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	backend     services.Backend
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Backend     services.Backend // Built from Config when nil
	DB          *sql.DB          // Opened from Config on first use when nil
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		backend:     opts.Backend,
		db:          opts.DB,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, recordCommand, generateCommand, stopCommand, playCommand,
		historyCommand, setupCommand, stubCommand, openCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before applies the global flags: log level, config file and backend URL override.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if err := r.loadConfig(cmd.String("config")); err != nil {
		return ctx, err
	}

	if url := cmd.String("url"); url != "" {
		r.config.Backend.URL = url
		if err := r.config.Validate(); err != nil {
			return ctx, err
		}
		r.backend = nil
	}

	return ctx, nil
}

// loadConfig replaces the runner's config with the file at path.
//
// A missing file at the default path keeps the built-in defaults; any other missing path is an error.
func (r *Runner) loadConfig(path string) error {
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultConfigPath {
			r.logger.Debug("no config file found, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}

	r.logger.Debug("loaded config", "path", path)
	r.config = config
	return nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database connection, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) backendService() services.Backend {
	if r.backend == nil {
		r.backend = services.NewBackendService(services.BackendOptions{
			BaseURL:   r.config.Backend.URL,
			Token:     r.config.Backend.Token,
			RateLimit: r.config.Backend.RateLimit,
		})
	}
	return r.backend
}

func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}

	r.db = db
	return db, nil
}

// journal returns the event journal, or nil when the database is disabled or unavailable.
func (r *Runner) journal() controller.Journal {
	db, err := r.database()
	if errors.Is(err, shared.ErrDatabaseDisabled) {
		r.logger.Debug("journal disabled")
		return nil
	}
	if err != nil {
		r.logger.Warn("journal unavailable", "error", err)
		return nil
	}
	return repositories.NewEventJournal(repositories.NewEventRepository(db))
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
