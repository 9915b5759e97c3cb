package services

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
)

// envelope holds the fields every JSON endpoint shares.
//
// Pointers distinguish a missing field from its zero value.
type envelope struct {
	Success *bool   `json:"success"`
	Error   *string `json:"error"`
}

type analyzeResponse struct {
	envelope
	Tempo *float64 `json:"tempo"`
	Key   *string  `json:"key"`
}

type generateRequest struct {
	Tempo float64 `json:"tempo"`
	Key   string  `json:"key"`
}

type generateResponse struct {
	envelope
	Beat  string `json:"beat"`
	Piano string `json:"piano"`
}

type playRequest struct {
	Beat  string `json:"beat"`
	Piano string `json:"piano"`
}

type playResponse struct {
	envelope
	Message string `json:"message"`
}

func malformed(endpoint, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s: %s", shared.ErrTransport, shared.ErrMalformedResponse, endpoint, fmt.Sprintf(format, args...))
}

// decode unmarshals body into v and validates the shared envelope.
//
// The returned bool is the success flag; a success:false body yields a [RejectedError].
func decode(endpoint string, body []byte, v interface{ head() *envelope }) (bool, error) {
	if err := json.Unmarshal(body, v); err != nil {
		return false, malformed(endpoint, "invalid JSON: %v", err)
	}

	env := v.head()
	if env.Success == nil {
		return false, malformed(endpoint, "missing success field")
	}
	if *env.Success {
		return true, nil
	}
	if env.Error == nil {
		return false, malformed(endpoint, "failure without error message")
	}
	return false, &RejectedError{Endpoint: endpoint, Message: *env.Error}
}

func (e *envelope) head() *envelope { return e }

// songDetails validates the analysis branch of a successful /record-analyze response.
func (r *analyzeResponse) songDetails() (*models.SongDetails, error) {
	if r.Tempo == nil || r.Key == nil {
		return nil, malformed(EndpointRecordAnalyze, "success without tempo and key")
	}

	song, err := models.NewSongDetails(*r.Tempo, *r.Key)
	if err != nil {
		return nil, malformed(EndpointRecordAnalyze, "%v", err)
	}
	return song, nil
}

func (r *generateResponse) tracks() *models.GeneratedTracks {
	if r.Beat == "" && r.Piano == "" {
		return nil
	}
	return &models.GeneratedTracks{Beat: r.Beat, Piano: r.Piano}
}
