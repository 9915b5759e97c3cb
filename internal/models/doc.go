// Package models defines the state and persistence types for the jamx playback controller.
//
// The package contains two categories of types:
//
// 1. Controller state: transient values owned by the controller for the lifetime of a session
//   - [SongDetails] : tempo and key reported by the backend's audio analysis
//   - [GeneratedTracks] : beat and piano files reported by music generation
//   - [Phase] : the single action currently in flight (or [Idle])
//   - [Snapshot] : everything the button mapping needs, see [ButtonsFor]
//   - [Playback] : whether backend music is known to be playing, known stopped, or unknown
//   - [ButtonFlags] : disabled flags for the record, generate and stop buttons
//
// 2. Persistent entities: database-backed journal rows
//   - [Event] : one finished controller action with its outcome
//
// Persistent entities implement [Record]; [Store] is the append-only storage contract for them.
package models
