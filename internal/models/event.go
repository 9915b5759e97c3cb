package models

import (
	"fmt"
	"time"
)

// Action names a controller flow recorded in the journal.
type Action string

const (
	ActionRecord   Action = "record"
	ActionGenerate Action = "generate"
	ActionStop     Action = "stop"
	ActionPlay     Action = "play"
)

// Outcome classifies how a flow finished.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"       // backend reported success
	OutcomeRejected Outcome = "rejected" // backend answered success:false
	OutcomeFailed   Outcome = "failed"   // transport failure or malformed response
)

// Event is a persisted record of one finished controller action.
type Event struct {
	id        string
	sequence  int
	action    Action
	outcome   Outcome
	message   string
	song      *SongDetails
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Record = (*Event)(nil)

// NewEvent creates an unsaved event. song may be nil when no song details are known.
func NewEvent(action Action, outcome Outcome, message string, song *SongDetails) *Event {
	now := time.Now().UTC()
	e := &Event{
		action:    action,
		outcome:   outcome,
		message:   message,
		createdAt: now,
		updatedAt: now,
	}
	if song != nil {
		copied := *song
		e.song = &copied
	}
	return e
}

// RestoreEvent rebuilds an event from stored columns.
func RestoreEvent(id string, sequence int, action Action, outcome Outcome, message string, song *SongDetails, createdAt, updatedAt time.Time, deletedAt *time.Time) *Event {
	return &Event{
		id:        id,
		sequence:  sequence,
		action:    action,
		outcome:   outcome,
		message:   message,
		song:      song,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (e *Event) ID() string               { return e.id }
func (e *Event) Sequence() int            { return e.sequence }
func (e *Event) Action() Action           { return e.action }
func (e *Event) Outcome() Outcome         { return e.outcome }
func (e *Event) Message() string          { return e.message }
func (e *Event) Song() *SongDetails       { return e.song }
func (e *Event) CreatedAt() time.Time     { return e.createdAt }
func (e *Event) UpdatedAt() time.Time     { return e.updatedAt }
func (e *Event) DeletedAt() *time.Time    { return e.deletedAt }
func (e *Event) SetID(id string)          { e.id = id }
func (e *Event) SetSequence(seq int)      { e.sequence = seq }
func (e *Event) SetUpdatedAt(t time.Time) { e.updatedAt = t }

// Validate checks the action and outcome against the known values.
func (e *Event) Validate() error {
	switch e.action {
	case ActionRecord, ActionGenerate, ActionStop, ActionPlay:
	default:
		return fmt.Errorf("invalid action %q", e.action)
	}

	switch e.outcome {
	case OutcomeOK, OutcomeRejected, OutcomeFailed:
	default:
		return fmt.Errorf("invalid outcome %q", e.outcome)
	}

	if e.createdAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	return nil
}
