package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/services"
	"github.com/desertthunder/jamx/internal/shared"
)

// View renders controller state. Implementations must not call back into the [Controller].
type View interface {
	UpdateStatus(message string, isError bool) // UpdateStatus replaces the status text
	SetButtonsState(flags models.ButtonFlags)  // SetButtonsState overwrites the disabled state of all three buttons
	ShowSongDetails(song models.SongDetails)   // ShowSongDetails renders tempo and key and reveals the details block
}

// Journal receives one event per finished action.
type Journal interface {
	Append(e *models.Event) error
}

// Options configures a [Controller].
type Options struct {
	View    View
	Backend services.Backend
	Journal Journal     // Optional
	Logger  *log.Logger // Defaults to [shared.NewLogger]

	// Initial state, used by one-shot commands that start mid-session.
	Song     *models.SongDetails
	Tracks   *models.GeneratedTracks
	Playback models.Playback
}

// Controller reflects user actions into backend requests and backend responses into its [View].
//
// It is safe for concurrent use; at most one action is in flight at a time.
type Controller struct {
	mu      sync.Mutex
	view    View
	backend services.Backend
	journal Journal
	logger  *log.Logger

	phase    models.Phase
	song     *models.SongDetails
	tracks   *models.GeneratedTracks
	playback models.Playback
}

// New creates a controller. Call [Controller.Init] before the first action.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Controller{
		view:     opts.View,
		backend:  opts.Backend,
		journal:  opts.Journal,
		logger:   opts.Logger,
		phase:    models.Idle,
		song:     opts.Song,
		tracks:   opts.Tracks,
		playback: opts.Playback,
	}
}

// Init renders the initial status, any preset song details and the derived button state.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = models.Idle
	c.view.UpdateStatus(StatusReady, false)
	if c.song != nil {
		c.view.ShowSongDetails(*c.song)
	}
	c.applyButtons()
}

// UpdateStatus sets the status text, rendered as an error when isError is set.
func (c *Controller) UpdateStatus(message string, isError bool) {
	c.view.UpdateStatus(message, isError)
}

// SetButtonsState overwrites the disabled state of all three buttons.
func (c *Controller) SetButtonsState(flags models.ButtonFlags) {
	c.view.SetButtonsState(flags)
}

// Snapshot returns a copy of the state that drives button availability.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Buttons returns the button flags for the current state.
func (c *Controller) Buttons() models.ButtonFlags {
	return models.ButtonsFor(c.Snapshot())
}

// CanReplay reports whether [Controller.Replay] would start a request.
func (c *Controller) CanReplay() bool {
	return models.CanReplay(c.Snapshot())
}

func (c *Controller) snapshot() models.Snapshot {
	s := models.Snapshot{Phase: c.phase, Playback: c.playback}
	if c.song != nil {
		song := *c.song
		s.Song = &song
	}
	if c.tracks != nil {
		tracks := *c.tracks
		s.Tracks = &tracks
	}
	return s
}

func (c *Controller) applyButtons() {
	c.view.SetButtonsState(models.ButtonsFor(c.snapshot()))
}

// begin moves from Idle into phase and shows status. Callers hold c.mu.
func (c *Controller) begin(phase models.Phase, status string) {
	c.logger.Debug("action started", "phase", phase)
	c.phase = phase
	c.view.UpdateStatus(status, false)
	c.applyButtons()
}

// settle returns to Idle if the controller is still in phase. Callers hold c.mu.
func (c *Controller) settle(phase models.Phase) bool {
	if c.phase != phase {
		c.logger.Warn("ignoring stale result", "expected", phase, "current", c.phase)
		return false
	}
	c.phase = models.Idle
	return true
}

// fail shows err in the status area and classifies it. Callers hold c.mu.
//
// Backend rejections show the backend's message; everything else shows fallback.
func (c *Controller) fail(action models.Action, err error, fallback string) (models.Outcome, string) {
	var rejected *services.RejectedError
	if errors.As(err, &rejected) {
		msg := rejectedStatus(rejected.Message)
		c.logger.Warn("backend rejected request", "action", action, "error", rejected.Message)
		c.view.UpdateStatus(msg, true)
		return models.OutcomeRejected, msg
	}

	c.logger.Error("backend request failed", "action", action, "error", err)
	c.view.UpdateStatus(fallback, true)
	return models.OutcomeFailed, err.Error()
}

// finish re-derives the buttons and journals the outcome with song, which may be nil. Callers hold c.mu.
func (c *Controller) finish(action models.Action, outcome models.Outcome, message string, song *models.SongDetails) {
	c.applyButtons()

	if c.journal == nil {
		return
	}
	if err := c.journal.Append(models.NewEvent(action, outcome, message, song)); err != nil {
		c.logger.Warn("failed to journal event", "action", action, "error", err)
	}
}

// BeginRecord starts an analysis if record is enabled.
func (c *Controller) BeginRecord() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if models.ButtonsFor(c.snapshot()).Record {
		return false
	}
	c.begin(models.Recording, StatusListening)
	return true
}

// FinishRecord applies the result of /record-analyze.
func (c *Controller) FinishRecord(song *models.SongDetails, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settle(models.Recording) {
		return
	}
	if err == nil && song == nil {
		err = fmt.Errorf("%w: %w: no song details", shared.ErrTransport, shared.ErrMalformedResponse)
	}

	if err != nil {
		outcome, msg := c.fail(models.ActionRecord, err, StatusConnFailed)
		c.finish(models.ActionRecord, outcome, msg, nil)
		return
	}

	copied := *song
	c.song = &copied
	c.view.ShowSongDetails(copied)
	c.view.UpdateStatus(StatusAnalyzed, false)
	c.logger.Info("audio analyzed", "tempo", copied.Tempo, "key", copied.Key)
	c.finish(models.ActionRecord, models.OutcomeOK, StatusAnalyzed, c.song)
}

// Record runs a full analysis round trip.
func (c *Controller) Record(ctx context.Context) error {
	if !c.BeginRecord() {
		return fmt.Errorf("%w: record", shared.ErrActionUnavailable)
	}

	song, err := c.backend.RecordAnalyze(ctx)
	c.FinishRecord(song, err)
	return err
}

// BeginGenerate starts a generation and returns the song details to send.
//
// Without analyzed song details it does nothing at all: no status change, no button change.
func (c *Controller) BeginGenerate() (models.SongDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.song == nil {
		return models.SongDetails{}, false
	}
	if models.ButtonsFor(c.snapshot()).Generate {
		return models.SongDetails{}, false
	}

	song := *c.song
	c.begin(models.Generating, StatusGenerating)
	return song, true
}

// FinishGenerate applies the result of /generate-music.
func (c *Controller) FinishGenerate(tracks *models.GeneratedTracks, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settle(models.Generating) {
		return
	}

	if err != nil {
		outcome, msg := c.fail(models.ActionGenerate, err, StatusConnFailed)
		c.finish(models.ActionGenerate, outcome, msg, c.song)
		return
	}

	c.playback = models.PlaybackPlaying
	if tracks != nil {
		copied := *tracks
		c.tracks = &copied
	}
	c.view.UpdateStatus(StatusPlaying, false)
	c.logger.Info("music generated", "tracks", tracks != nil)
	c.finish(models.ActionGenerate, models.OutcomeOK, StatusPlaying, c.song)
}

// Generate runs a full generation round trip.
//
// Returns [shared.ErrNotAnalyzed] without touching the view when no song has been analyzed.
func (c *Controller) Generate(ctx context.Context) error {
	song, ok := c.BeginGenerate()
	if !ok {
		if c.Snapshot().Song == nil {
			return shared.ErrNotAnalyzed
		}
		return fmt.Errorf("%w: generate", shared.ErrActionUnavailable)
	}

	tracks, err := c.backend.GenerateMusic(ctx, song)
	c.FinishGenerate(tracks, err)
	return err
}

// BeginStop starts stopping playback if stop is enabled.
func (c *Controller) BeginStop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if models.ButtonsFor(c.snapshot()).Stop {
		return false
	}
	c.begin(models.Stopping, StatusStopping)
	return true
}

// FinishStop applies the result of /stop-music.
//
// Whatever the outcome, record and generate come back. Only a successful stop disables stop.
func (c *Controller) FinishStop(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settle(models.Stopping) {
		return
	}

	if err != nil {
		c.logger.Error("stop failed", "error", err)
		c.view.UpdateStatus(StatusStopFailed, true)
		c.finish(models.ActionStop, models.OutcomeFailed, err.Error(), c.song)
		return
	}

	c.playback = models.PlaybackStopped
	c.view.UpdateStatus(StatusStopped, false)
	c.logger.Info("music stopped")
	c.finish(models.ActionStop, models.OutcomeOK, StatusStopped, c.song)
}

// Stop runs a full stop round trip.
func (c *Controller) Stop(ctx context.Context) error {
	if !c.BeginStop() {
		return fmt.Errorf("%w: stop", shared.ErrActionUnavailable)
	}

	err := c.backend.StopMusic(ctx)
	c.FinishStop(err)
	return err
}

// BeginReplay starts replaying the last generated tracks if [models.CanReplay] allows it.
func (c *Controller) BeginReplay() (models.GeneratedTracks, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !models.CanReplay(c.snapshot()) {
		return models.GeneratedTracks{}, false
	}

	tracks := *c.tracks
	c.begin(models.Replaying, StatusReplaying)
	return tracks, true
}

// FinishReplay applies the result of /play-music.
func (c *Controller) FinishReplay(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settle(models.Replaying) {
		return
	}

	if err != nil {
		outcome, msg := c.fail(models.ActionPlay, err, StatusConnFailed)
		c.finish(models.ActionPlay, outcome, msg, c.song)
		return
	}

	c.playback = models.PlaybackPlaying
	c.view.UpdateStatus(StatusPlaying, false)
	c.finish(models.ActionPlay, models.OutcomeOK, StatusPlaying, c.song)
}

// Replay runs a full replay round trip.
func (c *Controller) Replay(ctx context.Context) error {
	tracks, ok := c.BeginReplay()
	if !ok {
		return fmt.Errorf("%w: replay", shared.ErrActionUnavailable)
	}

	err := c.backend.PlayMusic(ctx, tracks)
	c.FinishReplay(err)
	return err
}
