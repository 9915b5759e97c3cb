// Backend service for the jam session HTTP API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is where the backend listens when started with its defaults.
const DefaultBaseURL = "http://127.0.0.1:5000"

var _ Backend = (*BackendService)(nil)

// BackendOptions configures a [BackendService].
type BackendOptions struct {
	BaseURL   string       // Defaults to [DefaultBaseURL]
	Token     string       // Optional bearer token
	RateLimit float64      // Requests per second; zero disables limiting
	Client    *http.Client // Defaults to [http.DefaultClient]
}

// BackendService implements [Backend] over HTTP.
//
// Requests are never retried and carry no timeout of their own; cancel the context to abandon one.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBackendService creates a new backend client.
//
// When a token is configured, the client is wrapped with an [oauth2.Transport] using a static token source.
func NewBackendService(opts BackendOptions) *BackendService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	client := opts.Client
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.Client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}))
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &BackendService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
		limiter:    limiter,
	}
}

// BaseURL returns the backend root, which also serves the backend's web page.
func (b *BackendService) BaseURL() string {
	return b.baseURL + "/"
}

// RecordAnalyze posts to /record-analyze with an empty body.
func (b *BackendService) RecordAnalyze(ctx context.Context) (*models.SongDetails, error) {
	body, err := b.post(ctx, EndpointRecordAnalyze, nil)
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if _, err := decode(EndpointRecordAnalyze, body, &resp); err != nil {
		return nil, err
	}
	return resp.songDetails()
}

// GenerateMusic posts {"tempo":…,"key":…} to /generate-music.
func (b *BackendService) GenerateMusic(ctx context.Context, song models.SongDetails) (*models.GeneratedTracks, error) {
	body, err := b.post(ctx, EndpointGenerateMusic, generateRequest{Tempo: song.Tempo, Key: song.Key})
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if _, err := decode(EndpointGenerateMusic, body, &resp); err != nil {
		return nil, err
	}
	return resp.tracks(), nil
}

// StopMusic posts to /stop-music. The response body is discarded unread.
func (b *BackendService) StopMusic(ctx context.Context) error {
	_, err := b.post(ctx, EndpointStopMusic, nil)
	return err
}

// PlayMusic posts {"beat":…,"piano":…} to /play-music.
func (b *BackendService) PlayMusic(ctx context.Context, tracks models.GeneratedTracks) error {
	if !tracks.Complete() {
		return fmt.Errorf("%w: beat and piano files are required", shared.ErrInvalidInput)
	}

	body, err := b.post(ctx, EndpointPlayMusic, playRequest{Beat: tracks.Beat, Piano: tracks.Piano})
	if err != nil {
		return err
	}

	var resp playResponse
	_, err = decode(EndpointPlayMusic, body, &resp)
	return err
}

// post sends a POST request and returns the raw response body.
//
// A nil payload sends no body and no Content-Type. HTTP status codes are not inspected: the JSON body decides success.
func (b *BackendService) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", shared.ErrTransport, endpoint, err)
		}
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrTransport, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: request failed: %v", shared.ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read response: %v", shared.ErrTransport, endpoint, err)
	}
	return body, nil
}
