// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/jamx/internal/models"
)

// MockBackend is a test double for [services.Backend] that records calls and returns canned results.
type MockBackend struct {
	mu sync.Mutex

	Song      *models.SongDetails
	Tracks    *models.GeneratedTracks
	RecordErr error
	GenErr    error
	StopErr   error
	PlayErr   error

	RecordCalls   int
	GenerateCalls []models.SongDetails
	StopCalls     int
	PlayCalls     []models.GeneratedTracks
}

func (m *MockBackend) RecordAnalyze(ctx context.Context) (*models.SongDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls++
	if m.RecordErr != nil {
		return nil, m.RecordErr
	}
	return m.Song, nil
}

func (m *MockBackend) GenerateMusic(ctx context.Context, song models.SongDetails) (*models.GeneratedTracks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = append(m.GenerateCalls, song)
	if m.GenErr != nil {
		return nil, m.GenErr
	}
	return m.Tracks, nil
}

func (m *MockBackend) StopMusic(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
	return m.StopErr
}

func (m *MockBackend) PlayMusic(ctx context.Context, tracks models.GeneratedTracks) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayCalls = append(m.PlayCalls, tracks)
	return m.PlayErr
}

// Calls returns the total number of backend requests made.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RecordCalls + len(m.GenerateCalls) + m.StopCalls + len(m.PlayCalls)
}

// FakeView is a test double for [controller.View] holding the rendered state.
type FakeView struct {
	Status       string
	StatusIsErr  bool
	StatusWrites int
	Buttons      models.ButtonFlags
	Song         *models.SongDetails
	DetailsShown bool
}

func (v *FakeView) UpdateStatus(message string, isError bool) {
	v.Status = message
	v.StatusIsErr = isError
	v.StatusWrites++
}

func (v *FakeView) SetButtonsState(flags models.ButtonFlags) {
	v.Buttons = flags
}

func (v *FakeView) ShowSongDetails(song models.SongDetails) {
	v.Song = &song
	v.DetailsShown = true
}

// MockJournal collects appended events.
type MockJournal struct {
	Events []*models.Event
	Err    error
}

func (j *MockJournal) Append(e *models.Event) error {
	if j.Err != nil {
		return j.Err
	}
	j.Events = append(j.Events, e)
	return nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
