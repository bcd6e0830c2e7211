package ai

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when generation is disabled by configuration or
// no API credential is configured. The caller should not retry without
// reconfiguring.
var ErrUnavailable = errors.New("ai service not available")

// ErrEmptyResponse is returned when the provider's response envelope carries
// no generated text. Model output is nondeterministic, so the caller may
// retry once.
var ErrEmptyResponse = errors.New("no response from ai model")

// ConfigError reports a missing required generation parameter. It is
// returned before any network request is attempted.
type ConfigError struct {
	Param string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

// TransportError wraps a network failure, timeout, or non-2xx provider
// status. The caller may retry with backoff.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a failure to decode model output into the expected
// structured shape. It carries the underlying parser's message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse ai response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InternalError wraps an unexpected fault inside the orchestrator. It exists
// so generation never propagates a panic or untyped failure to the caller.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
