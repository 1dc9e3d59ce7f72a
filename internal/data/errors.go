package data

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a feed answers successfully with an empty series.
var ErrNoData = errors.New("no data for requested period")

// ErrUnknownPair is returned for pairs the feed has no mapping or pool for.
var ErrUnknownPair = errors.New("unknown token pair")

// FeedError represents a failed call to an upstream feed.
type FeedError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *FeedError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
