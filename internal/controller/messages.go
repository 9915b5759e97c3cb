package controller

import "fmt"

// Status texts shown in the status area.
const (
	StatusReady       = "Ready. Press record to analyze a song."
	StatusListening   = "Listening..."
	StatusAnalyzed    = "Audio analyzed!"
	StatusGenerating  = "Generating music..."
	StatusPlaying     = "Playing generated music..."
	StatusReplaying   = "Replaying music..."
	StatusStopping    = "Stopping music..."
	StatusStopped     = "Music stopped!"
	StatusConnFailed  = "Failed to connect to backend!"
	StatusStopFailed  = "Failed to stop playback!"
	statusErrorPrefix = "Error: "
)

// rejectedStatus renders a backend error message for the status area.
func rejectedStatus(message string) string {
	return fmt.Sprintf("%s%s", statusErrorPrefix, message)
}
