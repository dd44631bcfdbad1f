package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	"FlipCheck/internal/service/ratelimit"
	"FlipCheck/internal/services/analytics"
	applogger "FlipCheck/pkg/logger"
)

// busyHistory has 100 fast flips spread over 50 distinct hours, two per hour.
func busyHistory() models.FlipHistory {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var flips []models.TradeRecord
	for h := 0; h < 50; h++ {
		for i := 0; i < 2; i++ {
			buy := base.Add(time.Duration(h)*time.Hour + time.Duration(i)*time.Minute)
			flips = append(flips, models.TradeRecord{Profit: 1000, BuyTime: buy, SellTime: buy.Add(30 * time.Second)})
		}
	}
	return models.FlipHistory{TotalProfit: 150_000_000, Flips: flips}
}

func newMacroCheck(resolver *fakeResolver, hist *fakeHistory, limiter drepo.RateLimiter, m *fakeMetrics) *MacroCheck {
	uc := NewMacroCheck(resolver, hist, limiter, m, analytics.DefaultScoringConfig(), applogger.Nop())
	uc.now = func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestMacroCheckRun(t *testing.T) {
	resolver := &fakeResolver{res: found("id1"), age: models.AccountOlderThan30Days}
	hist := &fakeHistory{h: busyHistory()}
	m := newFakeMetrics()
	uc := newMacroCheck(resolver, hist, nil, m)

	res, err := uc.Run(context.Background(), "user-1", "Notch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hist.days != drepo.MaxWindowDays {
		t.Fatalf("window = %d, want %d", hist.days, drepo.MaxWindowDays)
	}
	if res.CheckID == "" || res.PlayerID != "id1" || res.Player != "Notch" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Signals.TotalFlippingHours != 50 || !res.Signals.FastReaction {
		t.Fatalf("unexpected signals: %+v", res.Signals)
	}
	if math.Abs(res.Score.ProfitScore-100) > 1e-9 {
		t.Fatalf("profit score = %v, want 100", res.Score.ProfitScore)
	}
	if res.Score.AccountAge != models.AccountOlderThan30Days {
		t.Fatalf("account age = %s", res.Score.AccountAge)
	}
	if want := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC); !resolver.asOf.Equal(want) {
		t.Fatalf("account age probe at %v, want %v", resolver.asOf, want)
	}
	if res.Suspicion != analytics.Classify(res.Score.CompositeScore, analytics.DefaultScoringConfig()) {
		t.Fatalf("suspicion does not match composite %v", res.Score.CompositeScore)
	}
	if len(m.scores) != 1 || m.checks["macrocheck/ok"] != 1 {
		t.Fatalf("metrics not recorded: %v %v", m.scores, m.checks)
	}
}

func TestMacroCheckRateLimited(t *testing.T) {
	resolver := &fakeResolver{res: found("id1")}
	hist := &fakeHistory{h: busyHistory()}
	uc := newMacroCheck(resolver, hist, ratelimit.New(20*time.Second), newFakeMetrics())
	ctx := context.Background()

	if _, err := uc.Run(ctx, "user-1", "Notch"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	_, err := uc.Run(ctx, "user-1", "Notch")
	if !errors.Is(err, models.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	var rl *models.RateLimitError
	if !errors.As(err, &rl) || rl.RetryAfter <= 0 || rl.RetryAfter > 20*time.Second {
		t.Fatalf("unexpected retry after: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("denied call reached the resolver")
	}
	if _, err := uc.Run(ctx, "user-2", "Notch"); err != nil {
		t.Fatalf("other user should pass: %v", err)
	}
}

func TestMacroCheckLimiterErrorFailsOpen(t *testing.T) {
	uc := newMacroCheck(&fakeResolver{res: found("id1")}, &fakeHistory{h: busyHistory()},
		fakeLimiter{err: errBoom}, newFakeMetrics())
	if _, err := uc.Run(context.Background(), "u", "Notch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMacroCheckEmptyHistory(t *testing.T) {
	uc := newMacroCheck(&fakeResolver{res: found("id1")}, &fakeHistory{}, nil, newFakeMetrics())
	res, err := uc.Run(context.Background(), "u", "Notch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Signals.ReactionSamples != 0 || res.Signals.FastReaction || res.Signals.TotalFlippingHours != 0 {
		t.Fatalf("unexpected signals for empty history: %+v", res.Signals)
	}
	if res.Score.AccountAge != models.AccountAgeUnknown {
		t.Fatalf("account age = %s", res.Score.AccountAge)
	}
}

func TestMacroCheckIdentityUnavailable(t *testing.T) {
	m := newFakeMetrics()
	uc := newMacroCheck(&fakeResolver{res: drepo.Resolution{Status: drepo.Transient, Err: errBoom}}, &fakeHistory{}, nil, m)
	_, err := uc.Run(context.Background(), "u", "Notch")
	if !errors.Is(err, models.ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
	if m.upstream["mojang"] != 1 {
		t.Fatalf("upstream error not counted: %v", m.upstream)
	}
}
