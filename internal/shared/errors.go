package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing catalog API key")

	// Authentication errors
	//
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, with no distinction in the message text.
	ErrAlreadyRegistered  = fmt.Errorf("user already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrSessionUnresolved  = fmt.Errorf("session not yet initialized")

	// Catalog and service errors
	ErrSourceFetch        = fmt.Errorf("catalog request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
