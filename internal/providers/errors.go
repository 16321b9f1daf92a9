package providers

import (
	"errors"
	"fmt"
)

// ErrInterrupted reports that a completion was cancelled via its context.
// Callers match it with errors.Is to tell deliberate cancellation apart from
// real failures.
var ErrInterrupted = errors.New("completion interrupted")

// TransportError is a non-success status from the remote endpoint. Body
// carries the response text verbatim for diagnostics.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("endpoint returned HTTP %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError reports a response the engine cannot use: no
// choices, content of an unexpected shape, or a function call whose
// arguments are not valid JSON.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
