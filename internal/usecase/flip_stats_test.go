package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	applogger "FlipCheck/pkg/logger"
)

func TestTopFlips(t *testing.T) {
	flips := []models.TradeRecord{
		{ItemName: "a", Profit: 10},
		{ItemName: "b", Profit: 50},
		{ItemName: "c", Profit: 10},
		{ItemName: "d", Profit: -5},
		{ItemName: "e", Profit: 30},
		{ItemName: "f", Profit: 20},
		{ItemName: "g", Profit: 1},
	}
	got := TopFlips(flips, 5)

	var names string
	for _, f := range got {
		names += f.ItemName
	}
	if names != "befac" {
		t.Fatalf("order = %q, want befac", names)
	}
	if flips[0].ItemName != "a" {
		t.Fatalf("input must not be reordered")
	}
	if len(TopFlips(flips[:2], 5)) != 2 {
		t.Fatalf("short input should be returned whole")
	}
}

func TestFlipStatsRun(t *testing.T) {
	hist := &fakeHistory{h: models.FlipHistory{TotalProfit: 42, Flips: []models.TradeRecord{{Profit: 1}, {Profit: 3}}}}
	m := newFakeMetrics()
	uc := NewFlipStats(&fakeResolver{res: found("id1")}, hist, m, applogger.Nop())

	res, err := uc.Run(context.Background(), "Notch", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlayerID != "id1" || res.Total != 42 || res.Days != 3 || hist.days != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.TopFlips[0].Profit != 3 {
		t.Fatalf("top flip = %d, want 3", res.TopFlips[0].Profit)
	}
	if m.checks["flipstats/ok"] != 1 {
		t.Fatalf("metrics not recorded: %v", m.checks)
	}
}

func TestFlipStatsInvalidWindowMakesNoCalls(t *testing.T) {
	resolver := &fakeResolver{res: found("id1")}
	hist := &fakeHistory{}
	uc := NewFlipStats(resolver, hist, newFakeMetrics(), applogger.Nop())

	for _, days := range []int{0, 8, -1} {
		if _, err := uc.Run(context.Background(), "Notch", days); !errors.Is(err, models.ErrInvalidWindow) {
			t.Fatalf("days=%d: expected ErrInvalidWindow, got %v", days, err)
		}
	}
	if resolver.calls != 0 || hist.calls != 0 {
		t.Fatalf("expected no upstream calls, got resolve=%d fetch=%d", resolver.calls, hist.calls)
	}
}

func TestFlipStatsIdentityErrors(t *testing.T) {
	tests := []struct {
		res  drepo.Resolution
		want error
	}{
		{drepo.Resolution{Status: drepo.NotFound}, models.ErrIdentityNotFound},
		{drepo.Resolution{Status: drepo.Transient, Err: errBoom}, models.ErrIdentityUnavailable},
	}
	for _, tt := range tests {
		hist := &fakeHistory{}
		uc := NewFlipStats(&fakeResolver{res: tt.res}, hist, newFakeMetrics(), applogger.Nop())
		_, err := uc.Run(context.Background(), "ghost", 7)
		if !errors.Is(err, tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, err)
		}
		if errors.Is(err, errBoom) {
			t.Fatalf("raw transport error leaked: %v", err)
		}
		if hist.calls != 0 {
			t.Fatalf("history fetched after failed identity lookup")
		}
	}
}

func TestFlipStatsHistoryFailure(t *testing.T) {
	m := newFakeMetrics()
	hist := &fakeHistory{err: fmt.Errorf("%w: 502", models.ErrHistoryFetchFailed)}
	uc := NewFlipStats(&fakeResolver{res: found("id1")}, hist, m, applogger.Nop())

	if _, err := uc.Run(context.Background(), "Notch", 7); !errors.Is(err, models.ErrHistoryFetchFailed) {
		t.Fatalf("expected ErrHistoryFetchFailed, got %v", err)
	}
	if m.upstream["coflnet"] != 1 || m.checks["flipstats/upstream_error"] != 1 {
		t.Fatalf("unexpected metrics: %v %v", m.upstream, m.checks)
	}
}
