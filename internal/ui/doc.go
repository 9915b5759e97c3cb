// Package ui implements the interactive jam session terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern and doubles as the
// controller's View: the controller writes status text, button state and song details into it, and View renders them.
//
// Backend requests run inside tea.Cmds so the interface stays responsive. Their results come back as [Msg]
// values and are applied on the Update goroutine, so only one goroutine ever mutates the controller's view.
//
// Keyboard bindings (r, g, s, p, c, ?, q) mirror the buttons; a binding is disabled whenever its button is,
// and disabled bindings are dimmed in the help bar.
package ui
