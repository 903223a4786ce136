package remote

import (
	"errors"
	"fmt"
)

// ServiceError means the backend was reachable but answered with a
// non-success status.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("chat service returned status %d: %s", e.Status, e.Body)
}

// ConnectivityError means the request never reached the backend (DNS failure,
// connection refused, timeout). The orchestrator treats it as a signal to
// fall back, not as a hard failure.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("chat service unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err should route the caller to the fallback
// responder. Both failure classes qualify: a backend that errors is as useless
// to the user as one that is unreachable.
func IsUnavailable(err error) bool {
	var se *ServiceError
	var ce *ConnectivityError
	return errors.As(err, &se) || errors.As(err, &ce)
}
