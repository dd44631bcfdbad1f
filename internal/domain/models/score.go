package models

// AccountAgeClass is a best-effort classification of a Minecraft account's age.
type AccountAgeClass string

const (
	AccountOlderThan30Days AccountAgeClass = "OLDER_THAN_30_DAYS"
	AccountNew             AccountAgeClass = "NEW_ACCOUNT"
	AccountAgeUnknown      AccountAgeClass = "UNKNOWN"
)

// Suspicion is the coarse classification of a composite score.
type Suspicion string

const (
	SuspicionHigh Suspicion = "high"
	SuspicionLow  Suspicion = "low"
)

// Signals are the raw values extracted from a FlipHistory.
type Signals struct {
	TotalProfit         int64   `json:"totalProfit"`
	TradingValue        string  `json:"tradingValue"` // decimal, 2 places
	TotalFlippingHours  int     `json:"totalFlippingHours"`
	InconsistentPattern bool    `json:"inconsistentPattern"`
	AvgReactionMinutes  float64 `json:"avgReactionMinutes"`
	ReactionSamples     int     `json:"reactionSamples"`
	FastReaction        bool    `json:"fastReaction"`
}

// ScoreBreakdown is the composed macroing estimate.
type ScoreBreakdown struct {
	ProfitScore              float64         `json:"profitScore"`
	HourScore                float64         `json:"hourScore"`
	ReactionTimeScore        float64         `json:"reactionTimeScore"`
	InconsistentPatternScore float64         `json:"inconsistentPatternScore"`
	CompositeScore           float64         `json:"compositeScore"`
	AccountAge               AccountAgeClass `json:"accountAge"`
}

// MacroCheckResult is what the macro check command renders.
type MacroCheckResult struct {
	CheckID   string         `json:"checkId"`
	Player    string         `json:"player"`
	PlayerID  string         `json:"playerId"`
	Days      int            `json:"days"`
	Signals   Signals        `json:"signals"`
	Score     ScoreBreakdown `json:"score"`
	Suspicion Suspicion      `json:"suspicion"`
}
