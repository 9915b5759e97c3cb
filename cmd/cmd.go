// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/formatter"
	"github.com/desertthunder/jamx/internal/server"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   defaultConfigPath,
		},
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Backend base URL (overrides backend.url)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// tuiCommand launches the interactive interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui", "interactive"},
		Usage:   "Launch the interactive jam session (default)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "notify",
				Usage: "Send desktop notifications when analysis or generation finishes",
			},
		},
		Action: r.TUI,
	}
}

// recordCommand records and analyzes a song
func recordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "Record audio on the backend and print the detected tempo and key",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output song details as JSON",
			},
		},
		Action: r.Record,
	}
}

// generateCommand generates and plays music for a tempo and key
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate and play music for a tempo and key",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "tempo",
				Aliases:  []string{"t"},
				Usage:    "Tempo in beats per minute",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    "Musical key, e.g. C or Am",
				Required: true,
			},
		},
		Action: r.Generate,
	}
}

// stopCommand stops playback
func stopCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stop",
		Usage:  "Stop music playback on the backend",
		Action: r.Stop,
	}
}

// playCommand replays previously generated files
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Replay previously generated beat and piano files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "beat",
				Usage:    "Beat file reported by generate",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "piano",
				Usage:    "Piano file reported by generate",
				Required: true,
			},
		},
		Action: r.Play,
	}
}

// historyCommand handles the action journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"log"},
		Usage:   "Show the journal of past actions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "action",
				Usage: "Only show one action (record, generate, stop, play)",
			},
			&cli.StringFlag{
				Name:  "outcome",
				Usage: "Only show one outcome (ok, rejected, failed)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of events to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, csv, markdown, json)",
				Value:   string(formatter.FormatText),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the export to a file instead of stdout",
			},
		},
		Action: r.History,
		Commands: []*cli.Command{
			{
				Name:  "delete",
				Usage: "Remove an event from the journal",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// stubCommand serves a canned backend for local development
func stubCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Serve a stub backend with canned responses",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "tempo",
				Usage: "Tempo reported by record",
				Value: server.DefaultStubTempo,
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "Key reported by record",
				Value: server.DefaultStubKey,
			},
			&cli.StringFlag{
				Name:  "fail",
				Usage: "Reject every request with this error message",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides server.port)",
			},
		},
		Action: r.Stub,
	}
}

// openCommand opens the backend page
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "open",
		Usage:  "Open the backend's web page in the default browser",
		Action: r.Open,
	}
}
