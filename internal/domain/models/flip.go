package models

import "time"

// TradeRecord is one completed buy/sell cycle. Immutable once fetched.
type TradeRecord struct {
	ItemName  string    `json:"itemName"`
	ItemTag   string    `json:"itemTag,omitempty"`
	Tier      string    `json:"tier"`
	Profit    int64     `json:"profit"`
	PricePaid int64     `json:"pricePaid,omitempty"`
	SoldFor   int64     `json:"soldFor,omitempty"`
	Finder    string    `json:"finder,omitempty"`
	BuyTime   time.Time `json:"buyTime"`
	SellTime  time.Time `json:"sellTime"`
}

// ReactionTime is the time between buying and selling.
func (r TradeRecord) ReactionTime() time.Duration {
	return r.SellTime.Sub(r.BuyTime)
}

// FlipHistory is the trade window for one player. TotalProfit is the upstream
// aggregate and is not required to equal the sum of Flips[i].Profit.
type FlipHistory struct {
	Player      string        `json:"player"`
	TotalProfit int64         `json:"totalProfit"`
	Flips       []TradeRecord `json:"flips"`
	WindowDays  int           `json:"windowDays"`
}

// FlipStatsResult is what the flip stats command renders.
type FlipStatsResult struct {
	Player   string        `json:"player"`
	PlayerID string        `json:"playerId"`
	Days     int           `json:"days"`
	History  FlipHistory   `json:"-"`
	TopFlips []TradeRecord `json:"topFlips"`
	Total    int64         `json:"totalProfit"`
}
