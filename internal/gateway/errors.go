package gateway

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by actions that cannot be simulated offline.
var ErrNotConfigured = errors.New("API not configured")

// NetworkError covers an unreachable gateway, a non-2xx response and an
// undecodable body.
type NetworkError struct {
	Action     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s: http status %d: %v", e.Action, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Action, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed response whose status is not success.
type ApplicationError struct {
	Action  string
	Status  string
	Message string
}

func (e *ApplicationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("gateway %s: %s (status %q)", e.Action, msg, e.Status)
}

// CheckResult converts a non-success acknowledgement into an ApplicationError.
func CheckResult(action string, r Result) error {
	if r.Status != StatusSuccess {
		return &ApplicationError{Action: action, Status: r.Status, Message: r.Message}
	}
	return nil
}

// Describe returns a short user-facing notice for a gateway failure.
func Describe(err error) string {
	var ne *NetworkError
	var ae *ApplicationError
	switch {
	case errors.As(err, &ae):
		if ae.Message != "" {
			return ae.Message
		}
		return "The server rejected the request."
	case errors.As(err, &ne):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, ErrNotConfigured):
		return ErrNotConfigured.Error()
	default:
		return err.Error()
	}
}
