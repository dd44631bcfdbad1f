package usecase

import (
	"context"
	"time"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	applogger "FlipCheck/pkg/logger"
)

// Auctions lists a player's active auctions.
type Auctions struct {
	resolver drepo.IdentityResolver
	auctions drepo.AuctionFetcher
	metrics  drepo.Metrics
	l        *applogger.Logger
}

func NewAuctions(resolver drepo.IdentityResolver, auctions drepo.AuctionFetcher, metrics drepo.Metrics, l *applogger.Logger) *Auctions {
	return &Auctions{resolver: resolver, auctions: auctions, metrics: metrics, l: l.With("auctions")}
}

func (uc *Auctions) Run(ctx context.Context, handle string) (res models.AuctionsResult, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "auctions", start, err) }()

	id, err := resolvePlayer(ctx, uc.resolver, uc.metrics, uc.l, handle)
	if err != nil {
		return res, err
	}
	list, err := uc.auctions.Auctions(ctx, id)
	if err != nil {
		uc.metrics.RecordUpstreamError("hypixel")
		return res, err
	}
	return models.AuctionsResult{Player: handle, PlayerID: id, Auctions: list}, nil
}
