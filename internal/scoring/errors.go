package scoring

import (
	"errors"
	"fmt"
)

// TransportError wraps a failure to reach the service or read its reply.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("scoring transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a non-success status or an undecodable body.
type ResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring response (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scoring response: status %d: %s", e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// IsAnalysisFailure reports whether err is a transport or response failure.
// The caller treats both the same way.
func IsAnalysisFailure(err error) bool {
	var te *TransportError
	var re *ResponseError
	return errors.As(err, &te) || errors.As(err, &re)
}
