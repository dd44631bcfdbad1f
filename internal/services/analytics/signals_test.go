package analytics

import (
	"testing"
	"time"

	"FlipCheck/internal/domain/models"
)

func flipAt(buy time.Time, reaction time.Duration) models.TradeRecord {
	return models.TradeRecord{ItemName: "Hyperion", BuyTime: buy, SellTime: buy.Add(reaction), Profit: 1_000_000}
}

func TestActiveFlippingHoursSingleBucket(t *testing.T) {
	cfg := DefaultScoringConfig()
	base := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	one := []models.TradeRecord{flipAt(base.Add(5*time.Minute), time.Minute)}
	if got := ActiveFlippingHours(one, cfg); got != 0 {
		t.Fatalf("single trade: expected 0, got %d", got)
	}

	many := []models.TradeRecord{
		flipAt(base.Add(1*time.Minute), time.Minute),
		flipAt(base.Add(30*time.Minute), time.Minute),
		flipAt(base.Add(59*time.Minute), time.Minute),
	}
	if got := ActiveFlippingHours(many, cfg); got != 1 {
		t.Fatalf("three trades in one hour: expected 1, got %d", got)
	}
}

func TestActiveFlippingHoursSeparatesDays(t *testing.T) {
	cfg := DefaultScoringConfig()
	day1 := time.Date(2024, 5, 1, 14, 10, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	flips := []models.TradeRecord{
		flipAt(day1, time.Minute), flipAt(day1.Add(time.Minute), time.Minute),
		flipAt(day2, time.Minute), flipAt(day2.Add(time.Minute), time.Minute),
		flipAt(day2.Add(time.Hour), time.Minute),
	}
	if got := ActiveFlippingHours(flips, cfg); got != 2 {
		t.Fatalf("expected 2 active hours, got %d", got)
	}
}

func TestActiveFlippingHoursCapped(t *testing.T) {
	cfg := DefaultScoringConfig()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var flips []models.TradeRecord
	for h := 0; h < 200; h++ {
		at := start.Add(time.Duration(h) * time.Hour)
		flips = append(flips, flipAt(at, time.Minute), flipAt(at.Add(10*time.Minute), time.Minute))
	}
	if got := ActiveFlippingHours(flips, cfg); got != 168 {
		t.Fatalf("expected cap 168, got %d", got)
	}
}

// nights builds n distinct dates with perNight off-hours purchases each at 01:xx UTC.
func nights(n, perNight int) []models.TradeRecord {
	start := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	var flips []models.TradeRecord
	for d := 0; d < n; d++ {
		for i := 0; i < perNight; i++ {
			flips = append(flips, flipAt(start.AddDate(0, 0, d).Add(time.Duration(i)*time.Minute), time.Minute))
		}
	}
	return flips
}

func TestInconsistentNightPatternThreshold(t *testing.T) {
	cfg := DefaultScoringConfig()
	if !InconsistentNightPattern(nights(4, 3), cfg) {
		t.Fatalf("4 heavy nights should fire")
	}
	if InconsistentNightPattern(nights(3, 3), cfg) {
		t.Fatalf("3 heavy nights should not fire")
	}
	if InconsistentNightPattern(nights(6, 2), cfg) {
		t.Fatalf("nights with 2 trades are not heavy")
	}
}

func TestInconsistentNightPatternIgnoresDaytime(t *testing.T) {
	cfg := DefaultScoringConfig()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var flips []models.TradeRecord
	for d := 0; d < 7; d++ {
		for i := 0; i < 5; i++ {
			flips = append(flips, flipAt(start.AddDate(0, 0, d).Add(time.Duration(i)*time.Minute), time.Minute))
		}
	}
	if InconsistentNightPattern(flips, cfg) {
		t.Fatalf("daytime bursts must not fire")
	}
}

func TestInconsistentNightPatternUsesLocation(t *testing.T) {
	cfg := DefaultScoringConfig()
	// 01:00 UTC is 21:00 the previous day in UTC-4, which is not an off-hour.
	cfg.Location = time.FixedZone("UTC-4", -4*3600)
	if InconsistentNightPattern(nights(5, 3), cfg) {
		t.Fatalf("21:00 local purchases must not count as off-hours")
	}

	// 20:00 UTC is 01:00 in UTC+5.
	cfg.Location = time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	var flips []models.TradeRecord
	for d := 0; d < 4; d++ {
		for i := 0; i < 3; i++ {
			flips = append(flips, flipAt(start.AddDate(0, 0, d).Add(time.Duration(i)*time.Minute), time.Minute))
		}
	}
	if !InconsistentNightPattern(flips, cfg) {
		t.Fatalf("01:00 local purchases must count as off-hours")
	}
}

func TestActiveFlippingHoursRepeatedDSTHour(t *testing.T) {
	cfg := DefaultScoringConfig()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	cfg.Location = loc

	// 05:30Z and 06:30Z on 2024-11-03 are both 01:30 local, in different hours.
	first := time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC)
	second := time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)
	flips := []models.TradeRecord{flipAt(first, time.Minute), flipAt(second, time.Minute)}
	if got := ActiveFlippingHours(flips, cfg); got != 0 {
		t.Fatalf("repeated wall clock hour merged into one bucket: %d", got)
	}

	flips = append(flips, flipAt(first.Add(10*time.Minute), time.Minute), flipAt(second.Add(10*time.Minute), time.Minute))
	if got := ActiveFlippingHours(flips, cfg); got != 2 {
		t.Fatalf("expected 2 active hours, got %d", got)
	}
}

func TestActiveFlippingHoursHalfHourZone(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.Location = time.FixedZone("UTC+5:30", 5*3600+1800)

	// 10:40Z and 10:50Z are 16:10 and 16:20 local; 10:25Z is 15:55 local.
	base := time.Date(2024, 5, 1, 10, 40, 0, 0, time.UTC)
	flips := []models.TradeRecord{flipAt(base, time.Minute), flipAt(base.Add(10*time.Minute), time.Minute)}
	if got := ActiveFlippingHours(flips, cfg); got != 1 {
		t.Fatalf("expected 1 active hour, got %d", got)
	}
	flips = []models.TradeRecord{flipAt(base.Add(-15*time.Minute), time.Minute), flipAt(base, time.Minute)}
	if got := ActiveFlippingHours(flips, cfg); got != 0 {
		t.Fatalf("trades across a local hour boundary must not share a bucket, got %d", got)
	}
}

func TestAverageReaction(t *testing.T) {
	cfg := DefaultScoringConfig()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	flips := []models.TradeRecord{
		flipAt(base, 1*time.Minute),
		flipAt(base, 3*time.Minute),
		flipAt(base, 30*time.Minute), // over ceiling
		flipAt(base, -time.Minute),   // sold before bought
	}
	avg, n := AverageReaction(flips, cfg)
	if n != 2 || avg != 2 {
		t.Fatalf("expected avg 2 over 2 samples, got %v over %d", avg, n)
	}

	avg, n = AverageReaction([]models.TradeRecord{flipAt(base, time.Hour)}, cfg)
	if n != 0 || avg != 0 {
		t.Fatalf("expected no information, got %v over %d", avg, n)
	}
}

func TestAverageReactionCeilingInclusive(t *testing.T) {
	cfg := DefaultScoringConfig()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	avg, n := AverageReaction([]models.TradeRecord{flipAt(base, 5*time.Minute)}, cfg)
	if n != 1 || avg != 5 {
		t.Fatalf("5 minute flip should be kept, got %v over %d", avg, n)
	}
}

func TestExtract(t *testing.T) {
	cfg := DefaultScoringConfig()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	h := models.FlipHistory{
		TotalProfit: 50_000_000,
		Flips: []models.TradeRecord{
			flipAt(base, 30*time.Second),
			flipAt(base.Add(10*time.Minute), 90*time.Second),
		},
		WindowDays: 7,
	}
	s := Extract(h, cfg)
	if s.TotalProfit != 50_000_000 || s.TotalFlippingHours != 1 || s.InconsistentPattern {
		t.Fatalf("unexpected signals %+v", s)
	}
	if s.ReactionSamples != 2 || s.AvgReactionMinutes != 1 || !s.FastReaction {
		t.Fatalf("unexpected reaction signals %+v", s)
	}
	if s.TradingValue != "1.10" {
		t.Fatalf("unexpected trading value %q", s.TradingValue)
	}
}

func TestExtractNoReactionSamplesIsNotFast(t *testing.T) {
	s := Extract(models.FlipHistory{}, DefaultScoringConfig())
	if s.FastReaction || s.ReactionSamples != 0 || s.AvgReactionMinutes != 0 {
		t.Fatalf("empty history must carry no reaction information: %+v", s)
	}
	if s.TradingValue != "0.00" {
		t.Fatalf("unexpected trading value %q", s.TradingValue)
	}
}
