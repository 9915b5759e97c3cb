package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/controller"
	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
)

// lineView implements [controller.View] by printing one line per status change.
type lineView struct {
	w      io.Writer
	logger *log.Logger
	quiet  bool
}

func (v *lineView) UpdateStatus(message string, isError bool) {
	if v.quiet && !isError {
		return
	}
	fmt.Fprintln(v.w, message)
}

func (v *lineView) SetButtonsState(flags models.ButtonFlags) {
	v.logger.Debug("buttons", "record_disabled", flags.Record, "generate_disabled", flags.Generate, "stop_disabled", flags.Stop)
}

func (v *lineView) ShowSongDetails(song models.SongDetails) {
	if v.quiet {
		return
	}
	fmt.Fprintf(v.w, "Tempo: %s BPM\nKey: %s\n", song.TempoText(), song.Key)
}

// session builds a controller for a one-shot command, seeded with state from an earlier step.
func (r *Runner) session(seed controller.Options, quiet bool) *controller.Controller {
	seed.View = &lineView{w: r.output, logger: r.logger, quiet: quiet}
	seed.Backend = r.backendService()
	seed.Journal = r.journal()
	seed.Logger = r.logger
	return controller.New(seed)
}

// Record asks the backend to record and analyze a song.
func (r *Runner) Record(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	ctrl := r.session(controller.Options{}, useJSON)
	if err := ctrl.Record(ctx); err != nil {
		return fmt.Errorf("record failed: %w", err)
	}

	if useJSON {
		song := ctrl.Snapshot().Song
		return r.writeJSON(map[string]any{"tempo": song.Tempo, "key": song.Key}, false)
	}
	return nil
}

// Generate asks the backend to generate and play music for the given tempo and key.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	song, err := models.NewSongDetails(cmd.Float("tempo"), cmd.String("key"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	ctrl := r.session(controller.Options{Song: song}, false)
	if err := ctrl.Generate(ctx); err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if tracks := ctrl.Snapshot().Tracks; tracks.Complete() {
		r.writePlain("Beat: %s\nPiano: %s\n", tracks.Beat, tracks.Piano)
	}
	return nil
}

// Stop asks the backend to stop playback.
func (r *Runner) Stop(ctx context.Context, cmd *cli.Command) error {
	ctrl := r.session(controller.Options{}, false)
	if err := ctrl.Stop(ctx); err != nil {
		return fmt.Errorf("stop failed: %w", err)
	}
	return nil
}

// Play asks the backend to replay previously generated files.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	tracks := &models.GeneratedTracks{Beat: cmd.String("beat"), Piano: cmd.String("piano")}
	if !tracks.Complete() {
		return fmt.Errorf("%w: both --beat and --piano are required", shared.ErrMissingArgument)
	}

	ctrl := r.session(controller.Options{Tracks: tracks}, false)
	if err := ctrl.Replay(ctx); err != nil {
		return fmt.Errorf("play failed: %w", err)
	}
	return nil
}
