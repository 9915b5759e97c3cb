package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Backend errors
	ErrTransport          = fmt.Errorf("failed to reach backend")
	ErrMalformedResponse  = fmt.Errorf("malformed backend response")
	ErrBackendRejected    = fmt.Errorf("backend rejected request")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Controller errors
	ErrNotAnalyzed       = fmt.Errorf("no song analyzed yet")
	ErrActionUnavailable = fmt.Errorf("action unavailable")

	// Persistence errors
	ErrDatabaseDisabled = fmt.Errorf("database disabled")
	ErrEventNotFound    = fmt.Errorf("event not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
