// Package hypixel reads player auctions from the Hypixel public API.
package hypixel

import (
	"context"
	"fmt"
	"strings"

	"FlipCheck/internal/domain/models"
	"FlipCheck/internal/domain/repository"
	xhttp "FlipCheck/pkg/http"
	applogger "FlipCheck/pkg/logger"
	"FlipCheck/pkg/util"
)

const DefaultBaseURL = "https://api.hypixel.net"

type auctionResp struct {
	ItemName         string  `json:"item_name"`
	Category         string  `json:"category"`
	Tier             string  `json:"tier"`
	StartingBid      float64 `json:"starting_bid"`
	HighestBidAmount float64 `json:"highest_bid_amount"`
}

type auctionsResp struct {
	Success  bool          `json:"success"`
	Cause    string        `json:"cause"`
	Auctions []auctionResp `json:"auctions"`
}

// Client implements repository.AuctionFetcher.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	l       *applogger.Logger
}

func New(baseURL, apiKey string, client *xhttp.Client, l *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client, l: l.With("hypixel")}
}

// Auctions lists the player's auctions. Hypixel answers 403 with success=false
// for missing or development keys; both land in ErrAuctionsUnavailable.
func (c *Client) Auctions(ctx context.Context, playerID string) ([]models.Auction, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no api key configured", models.ErrAuctionsUnavailable)
	}

	var ar auctionsResp
	err := c.client.SendAndParseWithRetry(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/skyblock/auction",
		Headers:     map[string]string{"API-Key": c.apiKey},
		QueryParams: map[string][]string{"player": {playerID}},
	}, &ar)
	if err != nil {
		c.l.Warn("auction fetch failed", applogger.String("player", playerID), applogger.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrAuctionsUnavailable, err)
	}
	if !ar.Success {
		cause := ar.Cause
		if cause == "" {
			cause = "Unknown"
		}
		c.l.Warn("auction api refused", applogger.String("cause", cause))
		return nil, fmt.Errorf("%w: %s", models.ErrAuctionsUnavailable, cause)
	}

	out := make([]models.Auction, 0, len(ar.Auctions))
	for _, a := range ar.Auctions {
		out = append(out, models.Auction{
			ItemName:         orUnknown(util.StripFormatting(a.ItemName)),
			Category:         orUnknown(a.Category),
			Tier:             orUnknown(a.Tier),
			StartingBid:      int64(a.StartingBid),
			HighestBidAmount: int64(a.HighestBidAmount),
		})
	}
	return out, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

var _ repository.AuctionFetcher = (*Client)(nil)
