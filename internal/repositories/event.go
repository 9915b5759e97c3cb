package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
)

var _ models.Store[*models.Event] = (*EventRepository)(nil)

const eventColumns = `id, sequence, action, outcome, message, tempo, song_key, created_at, updated_at, deleted_at`

// EventRepository implements models.Store[*models.Event] for the action journal.
//
// Events are append-only and Delete is a soft delete.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository with the given database connection
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new [models.Event] with a generated ID and sequence
func (r *EventRepository) Create(event *models.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "events")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	var tempo sql.NullFloat64
	var key sql.NullString
	if song := event.Song(); song != nil {
		tempo = sql.NullFloat64{Float64: song.Tempo, Valid: true}
		key = sql.NullString{String: song.Key, Valid: true}
	}

	query := `
		INSERT INTO events (id, sequence, action, outcome, message, tempo, song_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(event.Action()),
		string(event.Outcome()),
		event.Message(),
		tempo,
		key,
		event.CreatedAt(),
		event.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	event.SetID(id)
	event.SetSequence(sequence)
	return nil
}

// Get retrieves an event by ID, excluding soft-deleted events
func (r *EventRepository) Get(id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ? AND deleted_at IS NULL`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}
	return event, err
}

// Delete soft-deletes an event by ID
func (r *EventRepository) Delete(id string) error {
	now := time.Now().UTC()

	result, err := r.db.Exec(`UPDATE events SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}

	return nil
}

// List retrieves events newest first, excluding soft-deleted ones.
//
// Supported criteria: "action" (string or [models.Action]), "outcome" (string or [models.Outcome]) and "limit" (int).
func (r *EventRepository) List(criteria map[string]any) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE deleted_at IS NULL`
	args := []any{}

	if action := criterionString(criteria, "action"); action != "" {
		query += " AND action = ?"
		args = append(args, action)
	}

	if outcome := criterionString(criteria, "outcome"); outcome != "" {
		query += " AND outcome = ?"
		args = append(args, outcome)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func criterionString(criteria map[string]any, name string) string {
	switch v := criteria[name].(type) {
	case string:
		return v
	case models.Action:
		return string(v)
	case models.Outcome:
		return string(v)
	default:
		return ""
	}
}

// scanner is satisfied by both [sql.Row] and [sql.Rows]
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*models.Event, error) {
	var (
		id        string
		sequence  int
		action    string
		outcome   string
		message   string
		tempo     sql.NullFloat64
		key       sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &action, &outcome, &message, &tempo, &key, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	var song *models.SongDetails
	if tempo.Valid && key.Valid {
		song = &models.SongDetails{Tempo: tempo.Float64, Key: key.String}
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreEvent(id, sequence, models.Action(action), models.Outcome(outcome), message, song, createdAt, updatedAt, deleted), nil
}
