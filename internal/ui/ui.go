package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"github.com/desertthunder/jamx/internal/controller"
	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/services"
	"github.com/desertthunder/jamx/internal/shared"
)

var _ controller.View = (*Model)(nil)

const appName = "jamx"

// Options configures a [Model].
type Options struct {
	Backend services.Backend
	Journal controller.Journal // Optional
	Logger  *log.Logger
	Notify  bool // Send a desktop notification when analysis or generation finishes

	notifier func(title, message string) error
	copier   func(text string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	backend services.Backend
	logger  *log.Logger

	status    string
	statusErr bool
	buttons   models.ButtonFlags
	song      *models.SongDetails

	notify   bool
	notifier func(title, message string) error
	copier   func(text string) error

	width    int
	quitting bool
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model and the controller that drives it.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.notifier == nil {
		opts.notifier = func(title, message string) error { return beeep.Notify(title, message, "") }
	}
	if opts.copier == nil {
		opts.copier = clipboard.WriteAll
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.title.MarginBottom(0)

	m := &Model{
		ctx:      ctx,
		backend:  opts.Backend,
		logger:   opts.Logger,
		notify:   opts.Notify,
		notifier: opts.notifier,
		copier:   opts.copier,
		spinner:  s,
		help:     help.New(),
		keys:     newKeyMap(),
	}

	m.ctrl = controller.New(controller.Options{
		View:    m,
		Backend: opts.Backend,
		Journal: opts.Journal,
		Logger:  opts.Logger,
	})
	m.ctrl.Init()
	m.refreshKeys()

	return m
}

// UpdateStatus implements [controller.View].
func (m *Model) UpdateStatus(message string, isError bool) {
	m.status = message
	m.statusErr = isError
}

// SetButtonsState implements [controller.View].
func (m *Model) SetButtonsState(flags models.ButtonFlags) {
	m.buttons = flags
	m.keys.setButtons(flags)
}

// ShowSongDetails implements [controller.View].
func (m *Model) ShowSongDetails(song models.SongDetails) {
	m.song = &song
}

// Controller exposes the controller driving this model.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Init sets the window title.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(appName)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		cmd = m.handleKeys(msg)

	case Msg:
		cmd = m.handleResult(msg)
	}

	m.refreshKeys()
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.record):
		return m.record()
	case key.Matches(msg, m.keys.generate):
		return m.generate()
	case key.Matches(msg, m.keys.stop):
		return m.stop()
	case key.Matches(msg, m.keys.replay):
		return m.replay()
	case key.Matches(msg, m.keys.copy):
		m.copySong()
	}
	return nil
}

func (m *Model) handleResult(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgRecordDone:
		res := msg.data.(recordResult)
		m.ctrl.FinishRecord(res.song, res.err)
		if res.err == nil && res.song != nil {
			return m.notifyCmd("Audio analyzed", res.song.String())
		}
	case MsgGenerateDone:
		res := msg.data.(generateResult)
		m.ctrl.FinishGenerate(res.tracks, res.err)
		if res.err == nil {
			return m.notifyCmd("Music generated", controller.StatusPlaying)
		}
	case MsgStopDone:
		m.ctrl.FinishStop(msg.errData())
	case MsgReplayDone:
		m.ctrl.FinishReplay(msg.errData())
	case MsgNotified:
		if err := msg.errData(); err != nil {
			m.logger.Warn("desktop notification failed", "error", err)
		}
	}
	return nil
}

func (m *Model) record() tea.Cmd {
	if !m.ctrl.BeginRecord() {
		return nil
	}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		song, err := m.backend.RecordAnalyze(m.ctx)
		return recordDoneMsg(song, err)
	})
}

func (m *Model) generate() tea.Cmd {
	song, ok := m.ctrl.BeginGenerate()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		tracks, err := m.backend.GenerateMusic(m.ctx, song)
		return generateDoneMsg(tracks, err)
	})
}

func (m *Model) stop() tea.Cmd {
	if !m.ctrl.BeginStop() {
		return nil
	}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return stopDoneMsg(m.backend.StopMusic(m.ctx))
	})
}

func (m *Model) replay() tea.Cmd {
	tracks, ok := m.ctrl.BeginReplay()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return replayDoneMsg(m.backend.PlayMusic(m.ctx, tracks))
	})
}

func (m *Model) copySong() {
	if m.song == nil {
		return
	}
	text := m.song.String()
	if err := m.copier(text); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.UpdateStatus(fmt.Sprintf("Could not copy to clipboard: %v", err), true)
		return
	}
	m.UpdateStatus(fmt.Sprintf("Copied %q to clipboard", text), false)
}

func (m *Model) notifyCmd(title, message string) tea.Cmd {
	if !m.notify {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		return notifiedMsg(notifier(appName+": "+title, message))
	}
}

// refreshKeys enables the bindings whose availability is not a button flag.
func (m *Model) refreshKeys() {
	m.keys.replay.SetEnabled(m.ctrl.CanReplay())
	m.keys.copy.SetEnabled(m.song != nil)
}

func (m *Model) busy() bool {
	return m.ctrl.Snapshot().Phase != models.Idle
}

// View renders the title, status line, song details, buttons and help bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.title.Render("jamx · AI jam session"))
	b.WriteString("\n")

	status := styles.statusStyle(m.statusErr).Render(m.status)
	if m.busy() {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	if m.song != nil {
		details := fmt.Sprintf("%s %s\n%s %s",
			styles.label.Render("Tempo:"), m.song.TempoText()+" BPM",
			styles.label.Render("Key:  "), m.song.Key,
		)
		b.WriteString(styles.details.Render(details))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderButtons() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.buttonStyle(m.buttons.Record).Render("Record"),
		" ",
		styles.buttonStyle(m.buttons.Generate).Render("Generate"),
		" ",
		styles.buttonStyle(m.buttons.Stop).Render("Stop"),
	)
}
