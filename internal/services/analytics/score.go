package analytics

import (
	"math"

	"FlipCheck/internal/domain/models"
)

// Compose turns extracted signals into bounded component scores and their
// weighted average. Pure and deterministic.
func Compose(totalProfit int64, flippingHours int, avgReactionMinutes float64, inconsistent bool, cfg ScoringConfig) models.ScoreBreakdown {
	profit := clamp(float64(totalProfit)/cfg.ProfitReference*100, 0, 100)
	hours := clamp(float64(flippingHours)/cfg.HourReference*100, 0, 100)
	reaction := clamp((10-avgReactionMinutes)/10*10, 0, 10)
	pattern := 0.0
	if inconsistent {
		pattern = 10
	}

	var composite float64
	if sum := cfg.ProfitWeight + cfg.HourWeight + cfg.ReactionWeight + cfg.PatternWeight; sum > 0 {
		composite = (profit*cfg.ProfitWeight +
			hours*cfg.HourWeight +
			reaction*cfg.ReactionWeight +
			pattern*cfg.PatternWeight) / sum
	}

	return models.ScoreBreakdown{
		ProfitScore:              profit,
		HourScore:                hours,
		ReactionTimeScore:        reaction,
		InconsistentPatternScore: pattern,
		CompositeScore:           clamp(composite, 0, 100),
		AccountAge:               models.AccountAgeUnknown,
	}
}

// ComposeSignals is Compose over an Extract result.
func ComposeSignals(s models.Signals, cfg ScoringConfig) models.ScoreBreakdown {
	return Compose(s.TotalProfit, s.TotalFlippingHours, s.AvgReactionMinutes, s.InconsistentPattern, cfg)
}

// Classify maps a composite score to a suspicion level.
func Classify(composite float64, cfg ScoringConfig) models.Suspicion {
	if composite >= cfg.HighSuspicion {
		return models.SuspicionHigh
	}
	return models.SuspicionLow
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
