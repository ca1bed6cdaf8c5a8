package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyProcessing  = errors.New("settlement already being processed")
	ErrStorage            = errors.New("storage error")
	ErrLockService        = errors.New("lock service error")
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrNotPending         = errors.New("settlement is not pending")
)

// RateLimitedError is returned when the caller has exhausted the financial
// operation rate limit. RetryAfter tells the caller when capacity frees up.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfterSeconds())
}

// RetryAfterSeconds returns the retry delay rounded up to whole seconds,
// never less than 1.
func (e *RateLimitedError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
