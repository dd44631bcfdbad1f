package models

// Auction is one active Skyblock auction listed by a player.
type Auction struct {
	ItemName         string `json:"itemName"`
	Category         string `json:"category"`
	Tier             string `json:"tier"`
	StartingBid      int64  `json:"startingBid"`
	HighestBidAmount int64  `json:"highestBidAmount"`
}

// AuctionsResult is what the auctions command renders.
type AuctionsResult struct {
	Player   string    `json:"player"`
	PlayerID string    `json:"playerId"`
	Auctions []Auction `json:"auctions"`
}
