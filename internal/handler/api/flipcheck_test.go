package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
	"FlipCheck/internal/service/ratelimit"
	"FlipCheck/internal/services/analytics"
	"FlipCheck/internal/usecase"
	xlogger "FlipCheck/pkg/logger"
	"FlipCheck/pkg/metrics"
)

type stubResolver struct{ res drepo.Resolution }

func (s stubResolver) Resolve(context.Context, string) drepo.Resolution { return s.res }
func (s stubResolver) AccountAge(context.Context, string, time.Time) models.AccountAgeClass {
	return models.AccountAgeUnknown
}

type stubHistory struct{ calls *int }

func (s stubHistory) Fetch(_ context.Context, _ string, days int) (models.FlipHistory, error) {
	*s.calls++
	return models.FlipHistory{TotalProfit: 10, WindowDays: days, Flips: []models.TradeRecord{{ItemName: "x", Profit: 10}}}, nil
}

type stubAuctions struct{}

func (stubAuctions) Auctions(context.Context, string) ([]models.Auction, error) {
	return nil, models.ErrAuctionsUnavailable
}

type stubDeleter struct{}

func (stubDeleter) Delete(_ context.Context, url string) (bool, error) {
	if !strings.HasPrefix(url, "https://discord.com/") {
		return false, models.ErrInvalidWebhookURL
	}
	return true, nil
}

func newTestEcho(t *testing.T, res drepo.Resolution) (*echo.Echo, *int) {
	t.Helper()
	calls := new(int)
	l := xlogger.Nop()
	m := metrics.Nop{}
	resolver := stubResolver{res: res}
	hist := stubHistory{calls: calls}

	h := NewFlipCheckHandler(l,
		usecase.NewFlipStats(resolver, hist, m, l),
		usecase.NewMacroCheck(resolver, hist, ratelimit.New(20*time.Second), m, analytics.DefaultScoringConfig(), l),
		usecase.NewAuctions(resolver, stubAuctions{}, m, l),
		usecase.NewWebhookDelete(stubDeleter{}, m, l),
	)
	e := echo.New()
	h.RegisterRoutes(e)
	return e, calls
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFlipStatsDefaultsToSevenDays(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	rec := do(e, http.MethodGet, "/api/flipstats?player=Notch", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var body struct {
		Data models.FlipStatsResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Days != 7 || body.Data.Total != 10 {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestFlipStatsInvalidWindow(t *testing.T) {
	e, calls := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	for _, days := range []string{"0", "8", "-1"} {
		rec := do(e, http.MethodGet, "/api/flipstats?player=Notch&days="+days, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("days=%s: status = %d", days, rec.Code)
		}
	}
	if *calls != 0 {
		t.Fatalf("history fetched for invalid window")
	}
}

func TestFlipStatsValidation(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	if rec := do(e, http.MethodGet, "/api/flipstats", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing player: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/flipstats?player=Notch&days=abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric days: status = %d", rec.Code)
	}
}

func TestIdentityErrors(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.NotFound})
	if rec := do(e, http.MethodGet, "/api/flipstats?player=ghost", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("not found: status = %d", rec.Code)
	}

	e, _ = newTestEcho(t, drepo.Resolution{Status: drepo.Transient, Err: context.DeadlineExceeded})
	rec := do(e, http.MethodGet, "/api/flipstats?player=Notch", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("transient: status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Fatalf("transport error leaked: %s", rec.Body)
	}
}

func TestMacroCheckRateLimited(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	if rec := do(e, http.MethodGet, "/api/macrocheck?player=Notch", ""); rec.Code != http.StatusOK {
		t.Fatalf("first call: status = %d, body %s", rec.Code, rec.Body)
	}
	rec := do(e, http.MethodGet, "/api/macrocheck?player=Notch", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second call: status = %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}
}

func TestAuctionsUnavailable(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	if rec := do(e, http.MethodGet, "/api/auctions?player=Notch", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDeleteWebhook(t *testing.T) {
	e, _ := newTestEcho(t, drepo.Resolution{Status: drepo.Found, ID: "id"})
	rec := do(e, http.MethodPost, "/api/webhooks/delete", `{"url":"https://discord.com/api/webhooks/1/x"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"deleted":true`) {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec := do(e, http.MethodPost, "/api/webhooks/delete", `{"url":"https://evil.example/x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign url: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/api/webhooks/delete", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing url: status = %d", rec.Code)
	}
}
