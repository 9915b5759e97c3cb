package models

import "time"

// Record is a sequenced journal row.
type Record interface {
	ID() string
	Sequence() int
	CreatedAt() time.Time
	Validate() error
}

// Store persists records append-only: rows are created, read and soft-deleted, never rewritten.
type Store[T Record] interface {
	Create(record T) error                     // Create validates record, assigns its ID and sequence, and inserts it
	Get(id string) (T, error)                  // Get returns a live record by ID
	List(criteria map[string]any) ([]T, error) // List returns live records matching criteria, newest first
	Delete(id string) error                    // Delete hides a record from Get and List
}
