package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/services"
)

const (
	DefaultStubTempo = 120.0
	DefaultStubKey   = "C"
)

// StubOptions configures the canned responses of a [StubBackend].
type StubOptions struct {
	Tempo float64 // Tempo reported by /record-analyze
	Key   string  // Key reported by /record-analyze
	Fail  string  // When set, every endpoint answers success:false with this error
}

// StubBackend serves the jam session endpoints with canned responses.
//
// It tracks whether music is "playing" so stop and play behave like the real backend.
type StubBackend struct {
	opts StubOptions

	mu      sync.Mutex
	playing bool
	tracks  *models.GeneratedTracks
}

// NewStubBackend creates a [StubBackend], filling in default tempo and key.
func NewStubBackend(opts StubOptions) *StubBackend {
	if opts.Tempo <= 0 {
		opts.Tempo = DefaultStubTempo
	}
	if opts.Key == "" {
		opts.Key = DefaultStubKey
	}
	return &StubBackend{opts: opts}
}

// Routes returns the paths this handler serves.
func (s *StubBackend) Routes() []string {
	return []string{
		"/",
		services.EndpointRecordAnalyze,
		services.EndpointGenerateMusic,
		services.EndpointStopMusic,
		services.EndpointPlayMusic,
	}
}

// Playing reports whether generated music is currently playing.
func (s *StubBackend) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// LastTracks returns the files most recently generated or played, or nil.
func (s *StubBackend) LastTracks() *models.GeneratedTracks {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracks == nil {
		return nil
	}
	tracks := *s.tracks
	return &tracks
}

// ServeHTTP dispatches to the endpoint handlers.
func (s *StubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		s.home(w, r)
		return
	case services.EndpointRecordAnalyze, services.EndpointGenerateMusic, services.EndpointStopMusic, services.EndpointPlayMusic:
	default:
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.opts.Fail != "" {
		writeJSON(w, failure(s.opts.Fail))
		return
	}

	switch r.URL.Path {
	case services.EndpointRecordAnalyze:
		writeJSON(w, map[string]any{"success": true, "tempo": s.opts.Tempo, "key": s.opts.Key})
	case services.EndpointGenerateMusic:
		s.generate(w, r)
	case services.EndpointStopMusic:
		s.mu.Lock()
		s.playing = false
		s.mu.Unlock()
		writeJSON(w, map[string]any{"success": true, "message": "Music playback stopped."})
	case services.EndpointPlayMusic:
		s.play(w, r)
	}
}

func (s *StubBackend) home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><title>jamx stub</title><h1>jamx stub backend</h1><p>Reporting %v BPM in %s.</p>\n", s.opts.Tempo, s.opts.Key)
}

func (s *StubBackend) generate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tempo *float64 `json:"tempo"`
		Key   *string  `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Tempo == nil || body.Key == nil {
		writeJSON(w, failure("Missing tempo or key"))
		return
	}

	tracks := &models.GeneratedTracks{
		Beat:  fmt.Sprintf("beat_%v_%s.mid", *body.Tempo, *body.Key),
		Piano: fmt.Sprintf("piano_%v_%s.mid", *body.Tempo, *body.Key),
	}

	s.mu.Lock()
	s.playing = true
	s.tracks = tracks
	s.mu.Unlock()

	writeJSON(w, map[string]any{"success": true, "beat": tracks.Beat, "piano": tracks.Piano})
}

func (s *StubBackend) play(w http.ResponseWriter, r *http.Request) {
	var body models.GeneratedTracks
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Complete() {
		writeJSON(w, failure("Missing music files."))
		return
	}

	s.mu.Lock()
	s.playing = true
	s.tracks = &body
	s.mu.Unlock()

	writeJSON(w, map[string]any{"success": true, "message": "Music is playing."})
}

// Health reports liveness and playback state. It answers any method.
func (s *StubBackend) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "playing": s.Playing()})
}

func failure(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
