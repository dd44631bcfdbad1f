package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	applogger "FlipCheck/pkg/logger"
)

// TopFlipsLimit is how many flips the stats card lists.
const TopFlipsLimit = 5

// FlipStats resolves a player and summarizes their flip window.
type FlipStats struct {
	resolver drepo.IdentityResolver
	history  drepo.HistoryFetcher
	metrics  drepo.Metrics
	l        *applogger.Logger
}

// NewFlipStats creates a new FlipStats instance.
func NewFlipStats(
	resolver drepo.IdentityResolver,
	history drepo.HistoryFetcher,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *FlipStats {
	return &FlipStats{resolver: resolver, history: history, metrics: metrics, l: l.With("flipstats")}
}

// Run checks the window before any upstream call.
func (uc *FlipStats) Run(ctx context.Context, handle string, days int) (res models.FlipStatsResult, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "flipstats", start, err) }()

	if !drepo.IsValidWindow(days) {
		return res, fmt.Errorf("%w: got %d", models.ErrInvalidWindow, days)
	}

	id, err := resolvePlayer(ctx, uc.resolver, uc.metrics, uc.l, handle)
	if err != nil {
		return res, err
	}

	h, err := uc.history.Fetch(ctx, id, days)
	if err != nil {
		uc.metrics.RecordUpstreamError("coflnet")
		uc.l.Error("flip history fetch failed", applogger.String("player", handle), applogger.Error(err))
		return res, err
	}
	h.Player = handle

	return models.FlipStatsResult{
		Player:   handle,
		PlayerID: id,
		Days:     days,
		History:  h,
		TopFlips: TopFlips(h.Flips, TopFlipsLimit),
		Total:    h.TotalProfit,
	}, nil
}

// TopFlips returns up to n flips by profit, highest first. Ties keep upstream order.
func TopFlips(flips []models.TradeRecord, n int) []models.TradeRecord {
	out := make([]models.TradeRecord, len(flips))
	copy(out, flips)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
