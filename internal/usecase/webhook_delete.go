package usecase

import (
	"context"
	"time"

	drepo "FlipCheck/internal/domain/repository"
	applogger "FlipCheck/pkg/logger"
	"FlipCheck/pkg/util"
)

// WebhookDelete removes a leaked Discord webhook.
type WebhookDelete struct {
	deleter drepo.WebhookDeleter
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewWebhookDelete(deleter drepo.WebhookDeleter, metrics drepo.Metrics, l *applogger.Logger) *WebhookDelete {
	return &WebhookDelete{deleter: deleter, metrics: metrics, l: l.With("webhookdeleter")}
}

// Run reports whether the webhook no longer exists.
func (uc *WebhookDelete) Run(ctx context.Context, url string) (deleted bool, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "webhookdeleter", start, err) }()

	deleted, err = uc.deleter.Delete(ctx, url)
	if err != nil {
		uc.l.Warn("webhook delete failed", applogger.String("url", util.MaskSecret(url)), applogger.Error(err))
		return false, err
	}
	return deleted, nil
}
