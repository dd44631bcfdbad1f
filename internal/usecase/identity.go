package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	applogger "FlipCheck/pkg/logger"
)

// Outcome labels used for metrics.
const (
	resultOK          = "ok"
	resultNotFound    = "not_found"
	resultRateLimited = "rate_limited"
	resultInvalid     = "invalid"
	resultUpstream    = "upstream_error"
	resultError       = "error"
)

// resolvePlayer turns a handle into a player id. Transient failures surface
// as ErrIdentityUnavailable; the cause is logged, not returned.
func resolvePlayer(ctx context.Context, r drepo.IdentityResolver, m drepo.Metrics, l *applogger.Logger, handle string) (string, error) {
	res := r.Resolve(ctx, handle)
	switch res.Status {
	case drepo.Found:
		return res.ID, nil
	case drepo.NotFound:
		return "", fmt.Errorf("%w: %s", models.ErrIdentityNotFound, handle)
	default:
		m.RecordUpstreamError("mojang")
		l.Warn("identity lookup failed", applogger.String("player", handle), applogger.Error(res.Err))
		return "", fmt.Errorf("%w: %s", models.ErrIdentityUnavailable, handle)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, models.ErrIdentityNotFound):
		return resultNotFound
	case errors.Is(err, models.ErrRateLimited):
		return resultRateLimited
	case errors.Is(err, models.ErrInvalidWindow), errors.Is(err, models.ErrInvalidWebhookURL):
		return resultInvalid
	case errors.Is(err, models.ErrIdentityUnavailable),
		errors.Is(err, models.ErrHistoryFetchFailed),
		errors.Is(err, models.ErrMalformedTimestamp),
		errors.Is(err, models.ErrAuctionsUnavailable):
		return resultUpstream
	default:
		return resultError
	}
}

// observe records the outcome and latency of one command run.
func observe(m drepo.Metrics, command string, start time.Time, err error) {
	m.RecordCheck(command, outcome(err))
	m.RecordLatency(command, time.Since(start).Seconds())
}
