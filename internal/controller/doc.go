// Package controller implements the playback controller that turns record, generate, stop and replay
// requests into backend calls and reflects the results into a [View].
//
// # Flow
//
// Every action is split into a Begin step and a Finish step:
//
//  1. BeginX checks availability, shows the in-progress status and disables the buttons.
//  2. The caller performs the backend request (synchronously, or in a bubbletea command).
//  3. FinishX applies the result: status text, song details, playing flag.
//
// [Controller.Record], [Controller.Generate], [Controller.Stop] and [Controller.Replay] run all three steps.
//
// # Button State
//
// Button availability is never assembled by hand. After every transition the controller applies
// [models.ButtonsFor] to its current snapshot, so exactly one request can be in flight and buttons
// come back only when their action makes sense.
//
// # Song Details
//
// Tempo and key are stored together as *[models.SongDetails] and are replaced only by a new analysis.
// Generating or stopping music keeps them.
package controller
