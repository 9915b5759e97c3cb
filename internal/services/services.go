// package services defines interface Backend for interacting with the jam session HTTP API
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
)

// Backend endpoints. All of them are called with POST.
const (
	EndpointRecordAnalyze = "/record-analyze"
	EndpointGenerateMusic = "/generate-music"
	EndpointStopMusic     = "/stop-music"
	EndpointPlayMusic     = "/play-music"
)

// Backend defines the operations the jam session backend exposes.
type Backend interface {
	// RecordAnalyze records from the backend's microphone and returns the detected tempo and key.
	RecordAnalyze(ctx context.Context) (*models.SongDetails, error)

	// GenerateMusic generates and starts playing an accompaniment for song.
	// The returned tracks are nil when the backend does not report file names.
	GenerateMusic(ctx context.Context, song models.SongDetails) (*models.GeneratedTracks, error)

	// StopMusic stops playback. Only transport failures are reported.
	StopMusic(ctx context.Context) error

	// PlayMusic replays previously generated tracks.
	PlayMusic(ctx context.Context, tracks models.GeneratedTracks) error
}

// RejectedError is returned when the backend answers with success:false.
//
// It unwraps to [shared.ErrBackendRejected].
type RejectedError struct {
	Endpoint string
	Message  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return shared.ErrBackendRejected
}
