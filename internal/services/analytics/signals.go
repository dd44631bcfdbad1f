package analytics

import (
	"time"

	"FlipCheck/internal/domain/models"

	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1_000_000)

type dateKey struct {
	year  int
	month time.Month
	day   int
}

// ActiveFlippingHours counts hour buckets (by buy time) holding at least
// ActiveHourMinTrades flips, capped at MaxFlippingHours.
func ActiveFlippingHours(flips []models.TradeRecord, cfg ScoringConfig) int {
	buckets := make(map[int64]int)
	for _, f := range flips {
		buckets[hourStart(f.BuyTime, cfg.Location).Unix()]++
	}

	active := 0
	for _, n := range buckets {
		if n >= cfg.ActiveHourMinTrades {
			active++
		}
	}
	if active > cfg.MaxFlippingHours {
		return cfg.MaxFlippingHours
	}
	return active
}

// hourStart returns the instant the local hour containing t began. A wall
// clock hour repeated by a DST fall-back yields two distinct instants.
func hourStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return lt.Add(-time.Duration(lt.Minute())*time.Minute -
		time.Duration(lt.Second())*time.Second -
		time.Duration(lt.Nanosecond()))
}

// InconsistentNightPattern reports whether enough calendar dates carry a burst
// of off-hours purchases.
func InconsistentNightPattern(flips []models.TradeRecord, cfg ScoringConfig) bool {
	perNight := make(map[dateKey]int)
	for _, f := range flips {
		t := f.BuyTime.In(cfg.Location)
		if !cfg.OffHours[t.Hour()] {
			continue
		}
		y, m, d := t.Date()
		perNight[dateKey{y, m, d}]++
	}

	heavy := 0
	for _, n := range perNight {
		if n >= cfg.HeavyNightMinTrades {
			heavy++
		}
	}
	return heavy >= cfg.HeavyNightsToFlag
}

// AverageReaction returns the mean buy-to-sell time in minutes over flips that
// sold within ReactionCeiling. Negative spans are bad data and skipped.
// With no samples the average is 0, which callers read as "no information".
func AverageReaction(flips []models.TradeRecord, cfg ScoringConfig) (avgMinutes float64, samples int) {
	var total time.Duration
	for _, f := range flips {
		rt := f.ReactionTime()
		if rt < 0 || rt > cfg.ReactionCeiling {
			continue
		}
		total += rt
		samples++
	}
	if samples == 0 {
		return 0, 0
	}
	return total.Minutes() / float64(samples), samples
}

// TradingValue converts coins to an estimated real-world value, 2 decimal places.
func TradingValue(totalProfit int64, factor decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(totalProfit).Mul(factor).Div(million).Round(2)
}

// Extract runs every signal over one history.
func Extract(h models.FlipHistory, cfg ScoringConfig) models.Signals {
	avg, samples := AverageReaction(h.Flips, cfg)
	return models.Signals{
		TotalProfit:         h.TotalProfit,
		TradingValue:        TradingValue(h.TotalProfit, cfg.ProfitFactor).StringFixed(2),
		TotalFlippingHours:  ActiveFlippingHours(h.Flips, cfg),
		InconsistentPattern: InconsistentNightPattern(h.Flips, cfg),
		AvgReactionMinutes:  avg,
		ReactionSamples:     samples,
		FastReaction:        samples > 0 && avg < cfg.FastReactionThreshold.Minutes(),
	}
}
