// Package coflnet fetches flip history from the Coflnet Skyblock API.
package coflnet

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"FlipCheck/internal/domain/models"
	"FlipCheck/internal/domain/repository"
	xhttp "FlipCheck/pkg/http"
	applogger "FlipCheck/pkg/logger"
	"FlipCheck/pkg/util"
)

const DefaultBaseURL = "https://sky.coflnet.com"

type flipResp struct {
	ItemName  string  `json:"itemName"`
	ItemTag   string  `json:"itemTag"`
	Tier      string  `json:"tier"`
	Profit    float64 `json:"profit"`
	PricePaid float64 `json:"pricePaid"`
	SoldFor   float64 `json:"soldFor"`
	Finder    string  `json:"finder"`
	BuyTime   string  `json:"buyTime"`
	SellTime  string  `json:"sellTime"`
}

type statsResp struct {
	TotalProfit float64    `json:"totalProfit"`
	Flips       []flipResp `json:"flips"`
}

// Client implements repository.HistoryFetcher.
type Client struct {
	baseURL string
	client  *xhttp.Client
	l       *applogger.Logger
}

func New(baseURL string, client *xhttp.Client, l *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client, l: l.With("coflnet")}
}

// Fetch returns the flip window for playerID. The window is checked before any request.
func (c *Client) Fetch(ctx context.Context, playerID string, days int) (models.FlipHistory, error) {
	if !repository.IsValidWindow(days) {
		return models.FlipHistory{}, fmt.Errorf("%w: got %d", models.ErrInvalidWindow, days)
	}

	var sr statsResp
	err := c.client.SendAndParseWithRetry(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/flip/stats/player/" + url.PathEscape(playerID),
		QueryParams: map[string][]string{
			"days":   {strconv.Itoa(days)},
			"offset": {"0"},
		},
	}, &sr)
	if err != nil {
		c.l.Warn("flip stats fetch failed", applogger.String("player", playerID), applogger.Error(err))
		return models.FlipHistory{}, fmt.Errorf("%w: %v", models.ErrHistoryFetchFailed, err)
	}

	flips := make([]models.TradeRecord, 0, len(sr.Flips))
	for i, f := range sr.Flips {
		rec, err := toRecord(f)
		if err != nil {
			return models.FlipHistory{}, fmt.Errorf("flip %d: %w", i, err)
		}
		flips = append(flips, rec)
	}

	return models.FlipHistory{
		Player:      playerID,
		TotalProfit: int64(sr.TotalProfit),
		Flips:       flips,
		WindowDays:  days,
	}, nil
}

func toRecord(f flipResp) (models.TradeRecord, error) {
	buy, err := util.NormalizeTimestamp(f.BuyTime)
	if err != nil {
		return models.TradeRecord{}, fmt.Errorf("buy time: %w", err)
	}
	sell, err := util.NormalizeTimestamp(f.SellTime)
	if err != nil {
		return models.TradeRecord{}, fmt.Errorf("sell time: %w", err)
	}
	return models.TradeRecord{
		ItemName:  util.StripFormatting(f.ItemName),
		ItemTag:   f.ItemTag,
		Tier:      util.StripFormatting(f.Tier),
		Profit:    int64(f.Profit),
		PricePaid: int64(f.PricePaid),
		SoldFor:   int64(f.SoldFor),
		Finder:    f.Finder,
		BuyTime:   buy,
		SellTime:  sell,
	}, nil
}

var _ repository.HistoryFetcher = (*Client)(nil)
