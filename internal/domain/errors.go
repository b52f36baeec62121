package domain

import "errors"

// NetworkError represents a request that failed to complete
// (transport failure or non-2xx status)
type NetworkError struct {
	Op         string // Operation that failed (e.g., "coin_list", "coin_detail")
	StatusCode int    // HTTP status, 0 when the request never got a response
	Err        error  // Underlying error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network error for a failed transport call
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// DecodeError represents a response whose shape was not the expected one
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return e.Op + ": decode: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsDecodeError reports whether err is (or wraps) a DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

var (
	// ErrInvalidCoinID is returned for empty or malformed identifiers
	ErrInvalidCoinID = errors.New("invalid coin id")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
