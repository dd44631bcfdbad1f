package models

import (
	"errors"
	"fmt"
	"time"

	"FlipCheck/pkg/util"
)

var (
	ErrInvalidWindow       = errors.New("window must be between 1 and 7 days")
	ErrIdentityNotFound    = errors.New("player not found")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
	ErrHistoryFetchFailed  = errors.New("flip history fetch failed")
	ErrMalformedTimestamp  = util.ErrMalformedTimestamp
	ErrAuctionsUnavailable = errors.New("auction data unavailable")
	ErrInvalidWebhookURL   = errors.New("not a discord webhook url")
	ErrRateLimited         = errors.New("rate limited")
)

// RateLimitError reports how long the caller has to wait.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter.Round(time.Second))
}

// Is makes errors.Is(err, ErrRateLimited) match.
func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }
