// Package mojang resolves Minecraft handles against the Mojang profile API.
package mojang

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"FlipCheck/internal/domain/models"
	"FlipCheck/internal/domain/repository"
	xhttp "FlipCheck/pkg/http"
	applogger "FlipCheck/pkg/logger"
)

// DefaultBaseURL is the public Mojang API.
const DefaultBaseURL = "https://api.mojang.com"

type profileResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client implements repository.IdentityResolver.
type Client struct {
	baseURL string
	client  *xhttp.Client
	l       *applogger.Logger
}

func New(baseURL string, client *xhttp.Client, l *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client, l: l.With("mojang")}
}

func (c *Client) profileURL(handle string) string {
	return c.baseURL + "/users/profiles/minecraft/" + url.PathEscape(handle)
}

// Resolve looks up the player id. 404/204 and empty ids are NotFound; transport
// failures, throttling and 5xx are Transient.
func (c *Client) Resolve(ctx context.Context, handle string) repository.Resolution {
	var pr profileResp
	err := c.client.SendAndParseWithRetry(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.profileURL(handle),
	}, &pr)

	switch code := xhttp.StatusCode(err); {
	case err == nil && pr.ID != "":
		return repository.Resolution{Status: repository.Found, ID: pr.ID}
	case err == nil:
		// 204 No Content or a profile without id
		return repository.Resolution{Status: repository.NotFound}
	case code == http.StatusNotFound, code == http.StatusBadRequest:
		return repository.Resolution{Status: repository.NotFound}
	default:
		c.l.Warn("profile lookup failed", applogger.String("handle", handle), applogger.Error(err))
		return repository.Resolution{Status: repository.Transient, Err: fmt.Errorf("resolve %s: %w", handle, err)}
	}
}

// AccountAge asks whether the handle existed at asOf. 200 means it did, 204
// means it did not; anything else is unknown. Never fails the caller.
func (c *Client) AccountAge(ctx context.Context, handle string, asOf time.Time) models.AccountAgeClass {
	resp, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.profileURL(handle),
		QueryParams: map[string][]string{"at": {strconv.FormatInt(asOf.Unix(), 10)}},
	})
	if err != nil {
		c.l.Debug("account age lookup failed", applogger.String("handle", handle), applogger.Error(err))
		return models.AccountAgeUnknown
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return models.AccountOlderThan30Days
	case http.StatusNoContent:
		return models.AccountNew
	default:
		return models.AccountAgeUnknown
	}
}

var _ repository.IdentityResolver = (*Client)(nil)
