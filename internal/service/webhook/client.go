// Package webhook deletes Discord webhooks, typically ones leaked by account stealers.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"FlipCheck/internal/domain/models"
	"FlipCheck/internal/domain/repository"
	xhttp "FlipCheck/pkg/http"
	applogger "FlipCheck/pkg/logger"
)

var allowedHosts = map[string]bool{
	"discord.com":           true,
	"discordapp.com":        true,
	"canary.discord.com":    true,
	"ptb.discord.com":       true,
	"canary.discordapp.com": true,
}

// Client implements repository.WebhookDeleter.
type Client struct {
	client *xhttp.Client
	l      *applogger.Logger
	// allowAny disables the host check, for tests against httptest servers.
	allowAny bool
}

func New(client *xhttp.Client, l *applogger.Logger) *Client {
	return &Client{client: client, l: l.With("webhook")}
}

// ValidateURL accepts only https Discord webhook URLs.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || !allowedHosts[strings.ToLower(u.Hostname())] {
		return models.ErrInvalidWebhookURL
	}
	if !strings.HasPrefix(u.Path, "/api/") || !strings.Contains(u.Path, "/webhooks/") {
		return models.ErrInvalidWebhookURL
	}
	return nil
}

// Delete sends DELETE, then checks with GET: 404 means the webhook is gone.
func (c *Client) Delete(ctx context.Context, raw string) (bool, error) {
	if !c.allowAny {
		if err := ValidateURL(raw); err != nil {
			return false, err
		}
	}

	resp, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{Method: xhttp.MethodDelete, URL: raw})
	if err != nil {
		return false, fmt.Errorf("delete webhook: %w", err)
	}
	resp.Body.Close()

	check, err := c.client.SendRequest(ctx, &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: raw})
	if err != nil {
		return false, fmt.Errorf("check webhook: %w", err)
	}
	check.Body.Close()

	c.l.Info("webhook delete attempted",
		applogger.Int("delete_status", resp.StatusCode),
		applogger.Int("check_status", check.StatusCode),
	)
	return check.StatusCode == http.StatusNotFound, nil
}

var _ repository.WebhookDeleter = (*Client)(nil)
