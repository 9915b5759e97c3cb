package repositories

import (
	"fmt"

	"github.com/desertthunder/jamx/internal/models"
)

// EventJournal implements controller.Journal using [EventRepository].
type EventJournal struct {
	repo *EventRepository
}

// NewEventJournal creates a new EventJournal with the given repository
func NewEventJournal(repo *EventRepository) *EventJournal {
	return &EventJournal{repo: repo}
}

// Append persists a finished action.
func (j *EventJournal) Append(event *models.Event) error {
	if err := j.repo.Create(event); err != nil {
		return fmt.Errorf("failed to journal %s event: %w", event.Action(), err)
	}
	return nil
}
