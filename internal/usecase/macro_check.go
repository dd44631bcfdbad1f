package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	"FlipCheck/internal/services/analytics"
	applogger "FlipCheck/pkg/logger"
)

// accountAgeCutoff is how far back the account age probe looks.
const accountAgeCutoff = 30 * 24 * time.Hour

// MacroCheck estimates how likely a player is to be using automation.
type MacroCheck struct {
	resolver drepo.IdentityResolver
	history  drepo.HistoryFetcher
	limiter  drepo.RateLimiter
	metrics  drepo.Metrics
	cfg      analytics.ScoringConfig
	l        *applogger.Logger
	now      func() time.Time
}

// NewMacroCheck creates a new MacroCheck instance. limiter may be nil.
func NewMacroCheck(
	resolver drepo.IdentityResolver,
	history drepo.HistoryFetcher,
	limiter drepo.RateLimiter,
	metrics drepo.Metrics,
	cfg analytics.ScoringConfig,
	l *applogger.Logger,
) *MacroCheck {
	return &MacroCheck{
		resolver: resolver,
		history:  history,
		limiter:  limiter,
		metrics:  metrics,
		cfg:      cfg,
		l:        l.With("macrocheck"),
		now:      time.Now,
	}
}

// Run gates on userKey, then scores the last seven days of handle's flips.
func (uc *MacroCheck) Run(ctx context.Context, userKey, handle string) (res models.MacroCheckResult, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "macrocheck", start, err) }()

	if err := uc.allow(ctx, userKey); err != nil {
		return res, err
	}

	id, err := resolvePlayer(ctx, uc.resolver, uc.metrics, uc.l, handle)
	if err != nil {
		return res, err
	}

	h, err := uc.history.Fetch(ctx, id, drepo.MaxWindowDays)
	if err != nil {
		uc.metrics.RecordUpstreamError("coflnet")
		uc.l.Error("flip history fetch failed", applogger.String("player", handle), applogger.Error(err))
		return res, err
	}
	h.Player = handle

	signals := analytics.Extract(h, uc.cfg)
	score := analytics.ComposeSignals(signals, uc.cfg)
	score.AccountAge = uc.resolver.AccountAge(ctx, handle, uc.now().Add(-accountAgeCutoff))

	res = models.MacroCheckResult{
		CheckID:   uuid.NewString(),
		Player:    handle,
		PlayerID:  id,
		Days:      h.WindowDays,
		Signals:   signals,
		Score:     score,
		Suspicion: analytics.Classify(score.CompositeScore, uc.cfg),
	}
	uc.metrics.RecordScore(score.CompositeScore)
	uc.l.Info("macro check done",
		applogger.String("check_id", res.CheckID),
		applogger.String("player", handle),
		applogger.Float64("composite", score.CompositeScore),
		applogger.Int("flips", len(h.Flips)),
		applogger.String("account_age", string(score.AccountAge)),
	)
	return res, nil
}

// allow fails open when the limiter backend errors.
func (uc *MacroCheck) allow(ctx context.Context, userKey string) error {
	if uc.limiter == nil {
		return nil
	}
	ok, wait, err := uc.limiter.Allow(ctx, userKey)
	if err != nil {
		uc.l.Warn("rate limiter unavailable", applogger.Error(err))
		return nil
	}
	if !ok {
		return &models.RateLimitError{RetryAfter: wait}
	}
	return nil
}
