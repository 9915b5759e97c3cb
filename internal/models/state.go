package models

// Phase is the action the controller is currently waiting on.
type Phase int

const (
	Idle Phase = iota
	Recording
	Generating
	Stopping
	Replaying
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Generating:
		return "generating"
	case Stopping:
		return "stopping"
	case Replaying:
		return "replaying"
	default:
		return ""
	}
}

// Playback is what the client knows about backend playback. The backend loops music on its own, so a new
// session starts at [PlaybackUnknown].
type Playback int

const (
	PlaybackUnknown Playback = iota
	PlaybackPlaying
	PlaybackStopped
)

func (p Playback) String() string {
	switch p {
	case PlaybackUnknown:
		return "unknown"
	case PlaybackPlaying:
		return "playing"
	case PlaybackStopped:
		return "stopped"
	default:
		return ""
	}
}

// Snapshot captures the controller state that determines which actions are available.
type Snapshot struct {
	Phase    Phase
	Song     *SongDetails
	Tracks   *GeneratedTracks
	Playback Playback
}

// Analyzed reports whether tempo and key are known.
func (s Snapshot) Analyzed() bool {
	return s.Song != nil
}

// ButtonFlags holds the disabled state of each button. The zero value enables all three.
type ButtonFlags struct {
	Record   bool
	Generate bool
	Stop     bool
}

// ButtonsFor derives button availability from a snapshot.
//
// Every button is disabled while a request is in flight. When idle, generate needs analyzed song details
// and stop is disabled only once a stop is known to have succeeded.
func ButtonsFor(s Snapshot) ButtonFlags {
	if s.Phase != Idle {
		return ButtonFlags{Record: true, Generate: true, Stop: true}
	}
	return ButtonFlags{Record: false, Generate: !s.Analyzed(), Stop: s.Playback == PlaybackStopped}
}

// CanReplay reports whether the last generated tracks can be played again.
func CanReplay(s Snapshot) bool {
	return s.Phase == Idle && s.Playback != PlaybackPlaying && s.Tracks.Complete()
}
