package analytics

import (
	"fmt"
	"time"

	"FlipCheck/pkg/config"

	"github.com/shopspring/decimal"
)

// ScoringConfig is the resolved, immutable form of config.Scoring.
type ScoringConfig struct {
	ProfitReference       float64
	HourReference         float64
	MaxFlippingHours      int
	ActiveHourMinTrades   int
	OffHours              map[int]bool
	HeavyNightMinTrades   int
	HeavyNightsToFlag     int
	ReactionCeiling       time.Duration
	FastReactionThreshold time.Duration
	ProfitWeight          float64
	HourWeight            float64
	ReactionWeight        float64
	PatternWeight         float64
	HighSuspicion         float64
	ProfitFactor          decimal.Decimal
	// Location is the reference for hour buckets and off-hours. Upstream
	// instants are UTC; this decides which wall clock "night" means.
	Location *time.Location
}

// NewScoringConfig resolves the timezone, off-hours set and profit factor.
func NewScoringConfig(s config.Scoring) (ScoringConfig, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return ScoringConfig{}, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	factor, err := decimal.NewFromString(s.ProfitFactor)
	if err != nil {
		return ScoringConfig{}, fmt.Errorf("parse profit factor %q: %w", s.ProfitFactor, err)
	}
	off := make(map[int]bool, len(s.OffHours))
	for _, h := range s.OffHours {
		off[h] = true
	}
	return ScoringConfig{
		ProfitReference:       float64(s.ProfitReference),
		HourReference:         s.HourReference,
		MaxFlippingHours:      s.MaxFlippingHours,
		ActiveHourMinTrades:   s.ActiveHourMinTrades,
		OffHours:              off,
		HeavyNightMinTrades:   s.HeavyNightMinTrades,
		HeavyNightsToFlag:     s.HeavyNightsToFlag,
		ReactionCeiling:       s.ReactionCeiling,
		FastReactionThreshold: s.FastReactionThreshold,
		ProfitWeight:          s.ProfitWeight,
		HourWeight:            s.HourWeight,
		ReactionWeight:        s.ReactionWeight,
		PatternWeight:         s.PatternWeight,
		HighSuspicion:         s.HighSuspicion,
		ProfitFactor:          factor,
		Location:              loc,
	}, nil
}

// DefaultScoringConfig returns the defaults from config.Default(). Panics only
// if the compiled-in defaults are broken.
func DefaultScoringConfig() ScoringConfig {
	sc, err := NewScoringConfig(config.Default().Scoring)
	if err != nil {
		panic(err)
	}
	return sc
}
