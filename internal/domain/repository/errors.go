package repository

import (
	"errors"
	"fmt"
)

// Data-unavailable taxonomy: these skip the symbol, never the run.
var (
	ErrNoPriceData         = errors.New("no price data")
	ErrEmptySeries         = errors.New("empty price series")
	ErrInsufficientHistory = errors.New("insufficient price history")
)

// RateLimitedError marks an upstream HTTP 429. Page-level fetches retry on it
// with linear backoff; everything else treats it like any other failure.
type RateLimitedError struct {
	URL string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by upstream: %s", e.URL)
}

// IsRateLimited reports whether err wraps a RateLimitedError.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
