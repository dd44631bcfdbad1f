package repository

import (
	"context"
	"time"

	"FlipCheck/internal/domain/models"
)

// ResolutionStatus tags the outcome of an identity lookup.
type ResolutionStatus int

const (
	Found ResolutionStatus = iota
	NotFound
	Transient
)

func (s ResolutionStatus) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// Resolution is the tagged result of resolving a player handle.
// ID is set only for Found; Err only for Transient.
type Resolution struct {
	Status ResolutionStatus
	ID     string
	Err    error
}

// IdentityResolver maps player handles to stable ids.
type IdentityResolver interface {
	Resolve(ctx context.Context, handle string) Resolution
	AccountAge(ctx context.Context, handle string, asOf time.Time) models.AccountAgeClass
}

// HistoryFetcher retrieves the flip history window for a player id.
type HistoryFetcher interface {
	Fetch(ctx context.Context, playerID string, days int) (models.FlipHistory, error)
}

// AuctionFetcher lists a player's active auctions.
type AuctionFetcher interface {
	Auctions(ctx context.Context, playerID string) ([]models.Auction, error)
}

// WebhookDeleter deletes a chat webhook and reports whether it is gone.
type WebhookDeleter interface {
	Delete(ctx context.Context, url string) (bool, error)
}

// RateLimiter gates per-user entry into a pipeline.
type RateLimiter interface {
	// Allow consumes one slot for key. When denied, retryAfter is the wait until the next slot.
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}

type Metrics interface {
	RecordCheck(command, result string)
	RecordUpstreamError(service string)
	RecordLatency(op string, seconds float64)
	RecordScore(score float64)
}
