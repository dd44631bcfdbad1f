package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"FlipCheck/internal/domain/models"
	"FlipCheck/internal/usecase"
	xhttp "FlipCheck/pkg/http"
	xlogger "FlipCheck/pkg/logger"
)

// FlipCheckHandler exposes the bot commands as a JSON API.
type FlipCheckHandler struct {
	logger     *xlogger.Logger
	flipStats  *usecase.FlipStats
	macroCheck *usecase.MacroCheck
	auctions   *usecase.Auctions
	webhooks   *usecase.WebhookDelete
}

func NewFlipCheckHandler(
	logger *xlogger.Logger,
	flipStats *usecase.FlipStats,
	macroCheck *usecase.MacroCheck,
	auctions *usecase.Auctions,
	webhooks *usecase.WebhookDelete,
) *FlipCheckHandler {
	return &FlipCheckHandler{
		logger:     logger.With("api"),
		flipStats:  flipStats,
		macroCheck: macroCheck,
		auctions:   auctions,
		webhooks:   webhooks,
	}
}

func (h *FlipCheckHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/flipstats", h.FlipStats)
	g.GET("/macrocheck", h.MacroCheck)
	g.GET("/auctions", h.Auctions)
	g.POST("/webhooks/delete", h.DeleteWebhook)
}

func (h *FlipCheckHandler) FlipStats(c echo.Context) error {
	req := &models.FlipStatsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.flipStats.Run(c.Request().Context(), req.Player, req.WindowDays())
	if err != nil {
		return h.fail(c, "flipstats", err)
	}
	return xhttp.SuccessResponse(c, res)
}

// MacroCheck is rate limited per client IP.
func (h *FlipCheckHandler) MacroCheck(c echo.Context) error {
	req := &models.MacroCheckRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.macroCheck.Run(c.Request().Context(), "ip:"+c.RealIP(), req.Player)
	if err != nil {
		var rl *models.RateLimitError
		if errors.As(err, &rl) {
			c.Response().Header().Set("Retry-After", strconv.Itoa(retrySeconds(rl)))
		}
		return h.fail(c, "macrocheck", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FlipCheckHandler) Auctions(c echo.Context) error {
	req := &models.AuctionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.auctions.Run(c.Request().Context(), req.Player)
	if err != nil {
		return h.fail(c, "auctions", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FlipCheckHandler) DeleteWebhook(c echo.Context) error {
	req := &models.WebhookDeleteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	deleted, err := h.webhooks.Run(c.Request().Context(), req.URL)
	if err != nil {
		return h.fail(c, "webhookdeleter", err)
	}
	return xhttp.SuccessResponse(c, map[string]bool{"deleted": deleted})
}

func (h *FlipCheckHandler) fail(c echo.Context, op string, err error) error {
	appErr := ToAppError(err)
	if appErr.Status >= 500 {
		h.logger.Error(op+" usecase error", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

// ToAppError maps domain errors to HTTP errors. Unknown errors become a 500
// without detail.
func ToAppError(err error) *xhttp.AppError {
	var rl *models.RateLimitError
	switch {
	case errors.As(err, &rl):
		return xhttp.TooManyRequestsError("rate limited").
			WithParam("retryAfterSeconds", retrySeconds(rl))
	case errors.Is(err, models.ErrInvalidWindow):
		return xhttp.BadRequestError(models.ErrInvalidWindow.Error())
	case errors.Is(err, models.ErrInvalidWebhookURL):
		return xhttp.BadRequestError(models.ErrInvalidWebhookURL.Error())
	case errors.Is(err, models.ErrIdentityNotFound):
		return xhttp.NotFoundError(models.ErrIdentityNotFound.Error())
	case errors.Is(err, models.ErrIdentityUnavailable):
		return xhttp.ServiceUnavailableError(models.ErrIdentityUnavailable.Error())
	case errors.Is(err, models.ErrHistoryFetchFailed),
		errors.Is(err, models.ErrMalformedTimestamp):
		return xhttp.BadGatewayError(models.ErrHistoryFetchFailed.Error())
	case errors.Is(err, models.ErrAuctionsUnavailable):
		return xhttp.BadGatewayError(models.ErrAuctionsUnavailable.Error())
	default:
		return xhttp.InternalError("something went wrong")
	}
}

func retrySeconds(rl *models.RateLimitError) int {
	return int(rl.RetryAfter.Round(time.Second).Seconds())
}
