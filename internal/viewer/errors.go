package viewer

import (
	"errors"
	"fmt"
)

// Sentinel errors for camera list builds.
var (
	// ErrNetwork indicates the camera list could not be reached at all.
	ErrNetwork = errors.New("camera list unreachable")

	// ErrHTTPStatus indicates the camera list request returned a non-OK status.
	ErrHTTPStatus = errors.New("camera list request failed")

	// ErrSuperseded indicates a newer build started before this one finished.
	ErrSuperseded = errors.New("build superseded by a newer build")
)

// NetworkError wraps a failure to reach the camera list source.
type NetworkError struct {
	// Source is the URL or path that was fetched
	Source string
	// Err is the underlying transport or file error
	Err error
}

// Error returns a string representation of the network error.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch data from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// FetchError indicates the source answered with a non-OK status.
type FetchError struct {
	// Source is the URL that was fetched
	Source string
	// StatusCode is the HTTP status code
	StatusCode int
	// Status is the status text
	Status string
}

// Error returns a string representation of the fetch error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch data from %s: %s", e.Source, e.Status)
}

// Is reports whether target is ErrHTTPStatus.
func (e *FetchError) Is(target error) bool {
	return target == ErrHTTPStatus
}
