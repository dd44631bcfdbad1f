package hypixel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FlipCheck/internal/domain/models"
	xhttp "FlipCheck/pkg/http"
	applogger "FlipCheck/pkg/logger"
)

func TestAuctions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("API-Key") != "key" {
			t.Errorf("missing api key header")
		}
		if r.URL.Query().Get("player") != "abc" {
			t.Errorf("unexpected player %q", r.URL.Query().Get("player"))
		}
		w.Write([]byte(`{"success":true,"auctions":[
			{"item_name":"§aJuju Shortbow","category":"weapon","tier":"EPIC","starting_bid":1000000,"highest_bid_amount":0},
			{"starting_bid":5}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", xhttp.NewClient(), applogger.Nop())
	got, err := c.Auctions(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ItemName != "Juju Shortbow" || got[0].StartingBid != 1000000 {
		t.Fatalf("unexpected auctions: %+v", got)
	}
	if got[1].ItemName != "Unknown" || got[1].Tier != "Unknown" {
		t.Fatalf("missing fields should read Unknown: %+v", got[1])
	}
}

func TestAuctionsRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"cause":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad", xhttp.NewClient(), applogger.Nop())
	if _, err := c.Auctions(context.Background(), "abc"); !errors.Is(err, models.ErrAuctionsUnavailable) {
		t.Fatalf("expected ErrAuctionsUnavailable, got %v", err)
	}
}

func TestAuctionsWithoutKey(t *testing.T) {
	c := New("http://127.0.0.1:1", "", xhttp.NewClient(), applogger.Nop())
	if _, err := c.Auctions(context.Background(), "abc"); !errors.Is(err, models.ErrAuctionsUnavailable) {
		t.Fatalf("expected ErrAuctionsUnavailable, got %v", err)
	}
}
