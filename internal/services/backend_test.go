package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
	tu "github.com/desertthunder/jamx/internal/testing"
)

// newJSONServer returns a server answering every request with body and recording the last request.
func newJSONServer(t *testing.T, status int, body string, seen *http.Request, seenBody *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.Clone(context.Background())
		}
		if seenBody != nil {
			data, _ := io.ReadAll(r.Body)
			*seenBody = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBackendService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			srv := NewBackendService(BackendOptions{})

			if srv.baseURL != DefaultBaseURL {
				t.Errorf("expected baseURL %s, got %s", DefaultBaseURL, srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if srv.limiter != nil {
				t.Error("expected no limiter without a rate limit")
			}
		})

		t.Run("Trims Trailing Slash", func(t *testing.T) {
			srv := NewBackendService(BackendOptions{BaseURL: "http://jam.local:8000/"})

			if srv.baseURL != "http://jam.local:8000" {
				t.Errorf("expected trimmed baseURL, got %s", srv.baseURL)
			}
			if srv.BaseURL() != "http://jam.local:8000/" {
				t.Errorf("expected BaseURL with root path, got %s", srv.BaseURL())
			}
		})

		t.Run("With Custom Client And Rate Limit", func(t *testing.T) {
			client := &http.Client{}
			srv := NewBackendService(BackendOptions{Client: client, RateLimit: 5})

			if srv.httpClient != client {
				t.Error("expected custom client to be used")
			}
			if srv.limiter == nil {
				t.Error("expected limiter to be configured")
			}
		})
	})

	t.Run("RecordAnalyze", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var req http.Request
			var body string
			server := newJSONServer(t, http.StatusOK, `{"success":true,"tempo":120,"key":"C"}`, &req, &body)

			song, err := NewBackendService(BackendOptions{BaseURL: server.URL}).RecordAnalyze(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.Tempo != 120 || song.Key != "C" {
				t.Errorf("expected 120/C, got %v/%s", song.Tempo, song.Key)
			}
			if req.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", req.Method)
			}
			if req.URL.Path != EndpointRecordAnalyze {
				t.Errorf("expected path %s, got %s", EndpointRecordAnalyze, req.URL.Path)
			}
			if body != "" {
				t.Errorf("expected empty body, got %q", body)
			}
			if req.Header.Get("Content-Type") != "" {
				t.Errorf("expected no content type for empty body, got %s", req.Header.Get("Content-Type"))
			}
		})

		t.Run("Rejected", func(t *testing.T) {
			server := newJSONServer(t, http.StatusOK, `{"success":false,"error":"no mic"}`, nil, nil)

			_, err := NewBackendService(BackendOptions{BaseURL: server.URL}).RecordAnalyze(context.Background())

			var rejected *RejectedError
			if !errors.As(err, &rejected) {
				t.Fatalf("expected RejectedError, got %v", err)
			}
			if rejected.Message != "no mic" {
				t.Errorf("expected message 'no mic', got %s", rejected.Message)
			}
			if !errors.Is(err, shared.ErrBackendRejected) {
				t.Error("expected error to wrap ErrBackendRejected")
			}
			if errors.Is(err, shared.ErrTransport) {
				t.Error("rejection should not be a transport error")
			}
		})

		t.Run("Rejected With Server Error Status", func(t *testing.T) {
			server := newJSONServer(t, http.StatusInternalServerError, `{"success":false,"error":"boom"}`, nil, nil)

			_, err := NewBackendService(BackendOptions{BaseURL: server.URL}).RecordAnalyze(context.Background())
			if !errors.Is(err, shared.ErrBackendRejected) {
				t.Errorf("expected the JSON body to decide the outcome, got %v", err)
			}
		})

		malformedCases := []struct {
			name string
			body string
		}{
			{name: "Not JSON", body: "<html>oops</html>"},
			{name: "Missing Success", body: `{"tempo":120,"key":"C"}`},
			{name: "Success Without Tempo", body: `{"success":true,"key":"C"}`},
			{name: "Success Without Key", body: `{"success":true,"tempo":120}`},
			{name: "Success With Empty Key", body: `{"success":true,"tempo":120,"key":""}`},
			{name: "Success With Zero Tempo", body: `{"success":true,"tempo":0,"key":"C"}`},
			{name: "Tempo As String", body: `{"success":true,"tempo":"120","key":"C"}`},
			{name: "Failure Without Error", body: `{"success":false}`},
		}

		for _, tt := range malformedCases {
			t.Run("Malformed "+tt.name, func(t *testing.T) {
				server := newJSONServer(t, http.StatusOK, tt.body, nil, nil)

				_, err := NewBackendService(BackendOptions{BaseURL: server.URL}).RecordAnalyze(context.Background())
				if !errors.Is(err, shared.ErrMalformedResponse) {
					t.Errorf("expected ErrMalformedResponse, got %v", err)
				}
				if !errors.Is(err, shared.ErrTransport) {
					t.Errorf("expected malformed response to be a transport error, got %v", err)
				}
			})
		}

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			_, err := NewBackendService(BackendOptions{Client: client}).RecordAnalyze(context.Background())
			if !errors.Is(err, shared.ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
			if !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' in error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			_, err := NewBackendService(BackendOptions{Client: client}).RecordAnalyze(context.Background())
			if !errors.Is(err, shared.ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
			if !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' in error, got %v", err)
			}
		})
	})

	t.Run("GenerateMusic", func(t *testing.T) {
		t.Run("Sends Tempo And Key As JSON", func(t *testing.T) {
			var req http.Request
			var body string
			server := newJSONServer(t, http.StatusOK, `{"success":true}`, &req, &body)

			tracks, err := NewBackendService(BackendOptions{BaseURL: server.URL}).
				GenerateMusic(context.Background(), models.SongDetails{Tempo: 95, Key: "Am"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tracks != nil {
				t.Errorf("expected no tracks when none are reported, got %+v", tracks)
			}
			if req.URL.Path != EndpointGenerateMusic {
				t.Errorf("expected path %s, got %s", EndpointGenerateMusic, req.URL.Path)
			}
			if body != `{"tempo":95,"key":"Am"}` {
				t.Errorf("expected exact JSON body, got %s", body)
			}
			if req.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected application/json content type, got %s", req.Header.Get("Content-Type"))
			}
		})

		t.Run("Reports Generated Tracks", func(t *testing.T) {
			server := newJSONServer(t, http.StatusOK, `{"success":true,"beat":"beat.mid","piano":"piano.mid"}`, nil, nil)

			tracks, err := NewBackendService(BackendOptions{BaseURL: server.URL}).
				GenerateMusic(context.Background(), models.SongDetails{Tempo: 120, Key: "C"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !tracks.Complete() || tracks.Beat != "beat.mid" || tracks.Piano != "piano.mid" {
				t.Errorf("unexpected tracks %+v", tracks)
			}
		})

		t.Run("Rejected", func(t *testing.T) {
			server := newJSONServer(t, http.StatusOK, `{"success":false,"error":"Missing tempo or key"}`, nil, nil)

			_, err := NewBackendService(BackendOptions{BaseURL: server.URL}).
				GenerateMusic(context.Background(), models.SongDetails{Tempo: 120, Key: "C"})

			var rejected *RejectedError
			if !errors.As(err, &rejected) || rejected.Endpoint != EndpointGenerateMusic {
				t.Errorf("expected RejectedError for %s, got %v", EndpointGenerateMusic, err)
			}
		})
	})

	t.Run("StopMusic", func(t *testing.T) {
		t.Run("Ignores Response Body", func(t *testing.T) {
			var req http.Request
			server := newJSONServer(t, http.StatusInternalServerError, `not json at all`, &req, nil)

			if err := NewBackendService(BackendOptions{BaseURL: server.URL}).StopMusic(context.Background()); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if req.URL.Path != EndpointStopMusic {
				t.Errorf("expected path %s, got %s", EndpointStopMusic, req.URL.Path)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection reset"))}

			err := NewBackendService(BackendOptions{Client: client}).StopMusic(context.Background())
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})
	})

	t.Run("PlayMusic", func(t *testing.T) {
		t.Run("Sends Track Names", func(t *testing.T) {
			var body string
			server := newJSONServer(t, http.StatusOK, `{"success":true,"message":"Music is playing."}`, nil, &body)

			err := NewBackendService(BackendOptions{BaseURL: server.URL}).
				PlayMusic(context.Background(), models.GeneratedTracks{Beat: "beat.mid", Piano: "piano.mid"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if body != `{"beat":"beat.mid","piano":"piano.mid"}` {
				t.Errorf("unexpected body %s", body)
			}
		})

		t.Run("Requires Both Tracks", func(t *testing.T) {
			err := NewBackendService(BackendOptions{}).PlayMusic(context.Background(), models.GeneratedTracks{Beat: "beat.mid"})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("Bearer Token", func(t *testing.T) {
		var req http.Request
		server := newJSONServer(t, http.StatusOK, `{"success":true}`, &req, nil)

		srv := NewBackendService(BackendOptions{BaseURL: server.URL, Token: "s3cret"})
		if err := srv.StopMusic(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Errorf("expected bearer authorization header, got %q", got)
		}
	})

	t.Run("Rate Limit Honors Context", func(t *testing.T) {
		server := newJSONServer(t, http.StatusOK, `{"success":true}`, nil, nil)
		srv := NewBackendService(BackendOptions{BaseURL: server.URL, RateLimit: 0.001})

		if err := srv.StopMusic(context.Background()); err != nil {
			t.Fatalf("first request should pass the limiter: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if err := srv.StopMusic(ctx); !errors.Is(err, shared.ErrTransport) {
			t.Errorf("expected limited request to fail as transport error, got %v", err)
		}
	})
}
