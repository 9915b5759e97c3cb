// Package repositories provides the SQLite persistence layer for the action journal.
//
// [EventRepository] implements models.Store[*models.Event] with soft deletes and sequence generation.
// [EventJournal] adapts it to the controller's Journal interface.
package repositories
