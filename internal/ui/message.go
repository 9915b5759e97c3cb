package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/jamx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecordDone MsgKind = iota
	MsgGenerateDone
	MsgStopDone
	MsgReplayDone
	MsgNotified
)

type recordResult struct {
	song *models.SongDetails
	err  error
}

type generateResult struct {
	tracks *models.GeneratedTracks
	err    error
}

// recordDoneMsg is the constructor for [MsgRecordDone]
func recordDoneMsg(song *models.SongDetails, err error) Msg {
	return Msg{kind: MsgRecordDone, data: recordResult{song, err}}
}

// generateDoneMsg is the constructor for [MsgGenerateDone]
func generateDoneMsg(tracks *models.GeneratedTracks, err error) Msg {
	return Msg{kind: MsgGenerateDone, data: generateResult{tracks, err}}
}

// stopDoneMsg is the constructor for [MsgStopDone]
func stopDoneMsg(err error) Msg {
	return Msg{kind: MsgStopDone, data: err}
}

// replayDoneMsg is the constructor for [MsgReplayDone]
func replayDoneMsg(err error) Msg {
	return Msg{kind: MsgReplayDone, data: err}
}

// notifiedMsg is the constructor for [MsgNotified]
func notifiedMsg(err error) Msg {
	return Msg{kind: MsgNotified, data: err}
}

// errData extracts the error payload of single-error messages
func (m Msg) errData() error {
	if err, ok := m.data.(error); ok {
		return err
	}
	return nil
}
