package usage

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks configuration values rejected at startup, such
// as a lookback below one hour or an unknown pricing tier. It never occurs
// at cycle time: values are validated once before polling begins.
var ErrInvalidArgument = errors.New("invalid argument")

// UpstreamError is returned when the usage endpoint answers with a
// non-success HTTP status. Status code and body are kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("usage request failed (status %d): %s", e.StatusCode, e.Body)
}

// TransportError is returned when a request times out or fails at the
// transport layer before any HTTP status was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("usage request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
