// Package domain defines domain-level errors for the portfolio feature.
package domain

import (
	"errors"
	"fmt"
)

// Errors returned by portfolio optimisation. Match them with errors.Is.
var (
	// ErrNoMatchingAssets indicates that none of the caller's tickers or ids exist in the registry.
	// It is a client input error and is raised before any engine call.
	ErrNoMatchingAssets = errors.New("no matching assets found")

	// ErrUpstreamUnavailable indicates that the optimisation engine could not be reached,
	// timed out, or answered with a non-success status.
	ErrUpstreamUnavailable = errors.New("optimisation engine unavailable")

	// ErrUpstreamTimeout indicates that the engine call exceeded its deadline.
	// Every timeout also matches ErrUpstreamUnavailable.
	ErrUpstreamTimeout = errors.New("optimisation engine timed out")

	// ErrMalformedUpstreamResponse indicates that the engine's response violates the wire contract.
	ErrMalformedUpstreamResponse = errors.New("malformed optimisation engine response")
)

// UpstreamError describes a failed call to the optimisation engine.
type UpstreamError struct {
	StatusCode int    // HTTP status when the engine answered, 0 otherwise
	Message    string // Error message reported by the engine, if any
	Timeout    bool
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: %v", ErrUpstreamTimeout, e.Err)
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", ErrUpstreamUnavailable, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", ErrUpstreamUnavailable, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", ErrUpstreamUnavailable, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports ErrUpstreamUnavailable for every UpstreamError and
// ErrUpstreamTimeout for timeouts only.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamUnavailable:
		return true
	case ErrUpstreamTimeout:
		return e.Timeout
	}
	return false
}
