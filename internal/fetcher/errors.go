package fetcher

import "fmt"

// NetworkError indicates the origin was unreachable: DNS failure,
// connection refused, or a broken transfer. It is fatal to the audit.
type NetworkError struct {
	// URL is the URL that could not be retrieved.
	URL string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates the origin did not answer within the fetch
// deadline. It is fatal to the audit.
type TimeoutError struct {
	// URL is the URL that timed out.
	URL string

	// Err is the underlying deadline error.
	Err error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out fetching %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying deadline error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}
