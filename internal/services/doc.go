// Package services defines the [Backend] interface for the jam session backend and implements it over HTTP.
//
// # Backend Interface
//
// The backend owns the microphone, the audio analysis, music generation and playback.
// jamx only calls four fixed endpoints, all with POST:
//   - /record-analyze : record, then detect tempo and key
//   - /generate-music : generate a beat and piano progression for {tempo, key} and start playing it
//   - /stop-music : stop playback
//   - /play-music : replay previously generated {beat, piano} files
//
// # Response Validation
//
// Responses are decoded into wire structs with pointer fields so missing fields can be told apart from zero values.
// A body that is not JSON, lacks the success flag, or lacks the fields its branch requires is malformed and reported
// as a transport failure, the same tier as a refused connection.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrTransport] : the request failed or the response could not be used
//   - [shared.ErrMalformedResponse] : wrapped together with ErrTransport for unusable bodies
//   - [RejectedError] : the backend answered success:false; unwraps to [shared.ErrBackendRejected]
//
// # Transport
//
// [BackendService] never retries and sets no timeout; callers cancel through the context.
// An optional bearer token is attached with an [oauth2.Transport] and an optional [rate.Limiter] spaces requests out.
package services
