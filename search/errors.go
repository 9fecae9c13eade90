package search

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResults is returned when a search completes but nothing survives filtering
	ErrNoResults = errors.New("no videos matched the search criteria")

	// ErrEmptyKeyword is returned when the criteria carry no keyword
	ErrEmptyKeyword = errors.New("search keyword is required")
)

// APIError wraps a failed search or video details request. It aborts the
// whole search; per-channel statistics failures never produce one.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube %s request failed: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
