package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/jamx/internal/shared"
)

// SongDetails holds the attributes detected by the backend's audio analysis.
//
// Controllers keep a *SongDetails: nil means nothing has been analyzed, so tempo and key are always set together.
type SongDetails struct {
	Tempo float64 // Beats per minute
	Key   string  // Musical key label, e.g. "C" or "Am"
}

// NewSongDetails validates tempo and key and returns the pair.
func NewSongDetails(tempo float64, key string) (*SongDetails, error) {
	if math.IsNaN(tempo) || math.IsInf(tempo, 0) || tempo <= 0 {
		return nil, fmt.Errorf("%w: tempo must be a positive number, got %v", shared.ErrInvalidInput, tempo)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key must not be empty", shared.ErrInvalidInput)
	}
	return &SongDetails{Tempo: tempo, Key: key}, nil
}

// TempoText renders the tempo the way it is displayed in the song details.
func (s SongDetails) TempoText() string {
	return shared.FormatTempo(s.Tempo)
}

func (s SongDetails) String() string {
	return fmt.Sprintf("%s BPM, %s", s.TempoText(), s.Key)
}

// GeneratedTracks names the files the backend produced for the last generation.
type GeneratedTracks struct {
	Beat  string
	Piano string
}

// Complete reports whether both files are known, which replay requires.
func (g *GeneratedTracks) Complete() bool {
	return g != nil && g.Beat != "" && g.Piano != ""
}
