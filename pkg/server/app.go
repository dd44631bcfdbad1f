package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"FlipCheck/internal/handler/discord"
	"FlipCheck/pkg/config"
	xhttp "FlipCheck/pkg/http"
	pkgkafka "FlipCheck/pkg/kafka"
	applogger "FlipCheck/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	httpServer *xhttp.Server
	bot        *discord.Bot
	redis      *redis.Client
	producer   *pkgkafka.Producer
}

// New creates a new App. httpServer, bot, rdb and producer may each be nil
// when the matching feature is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	bot *discord.Bot,
	rdb *redis.Client,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:        cfg,
		l:          l,
		httpServer: httpServer,
		bot:        bot,
		redis:      rdb,
		producer:   producer,
	}
}

// Run starts the HTTP server and the Discord bot and blocks until SIGINT,
// SIGTERM, ctx cancellation or the first component failure.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.shutdown()

	g, gctx := errgroup.WithContext(ctx)
	if a.httpServer != nil {
		g.Go(func() error { return a.httpServer.Serve(gctx) })
	}
	if a.bot != nil {
		g.Go(func() error { return a.bot.Run(gctx) })
	}

	a.l.Info("flipcheck started",
		applogger.String("env", a.cfg.Environment),
		applogger.Bool("http", a.httpServer != nil),
		applogger.Bool("discord", a.bot != nil),
		applogger.Bool("redis", a.redis != nil),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.l.Error("component failed", applogger.Error(err))
		return fmt.Errorf("run: %w", err)
	}
	a.l.Info("shutdown signal received")
	return nil
}

// shutdown flushes the error collector before closing the producer it writes to.
func (a *App) shutdown() {
	a.l.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.l.Warn("redis close error", applogger.Error(err))
		}
	}
	a.l.Info("shutdown complete")
}
