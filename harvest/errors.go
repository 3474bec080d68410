package harvest

import (
	"errors"
	"fmt"
)

var (
	// ErrFetcherRequired indicates a nil Fetcher was passed to NewHarvester.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrInvalidConcurrency indicates a concurrency below 1.
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

	// ErrInvalidBaseURL indicates the site base URL could not be parsed.
	ErrInvalidBaseURL = errors.New("invalid site base URL")
)

// FetchError describes a single page that could not be harvested.
// StatusCode is set for non-2xx responses, Err for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
