//go:build !wireinject
// +build !wireinject

// Injector body for wire.go, kept in the shape wire emits. Running
// go generate ./internal/di replaces this file with wire's output.
//
//go:generate go run -mod=mod github.com/google/wire/cmd/wire

package di

import (
	"FlipCheck/internal/handler/api"
	"FlipCheck/internal/usecase"
	"FlipCheck/pkg/config"
	"FlipCheck/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := ProvideLogger(cfg, producer)
	if err != nil {
		return nil, err
	}
	client := ProvideRedis(cfg)
	metrics := ProvideMetrics()
	xhttpClient := ProvideHTTPClient(cfg)
	identityResolver := ProvideIdentityResolver(cfg, xhttpClient, logger)
	historyFetcher := ProvideHistoryFetcher(cfg, xhttpClient, logger)
	flipStats := usecase.NewFlipStats(identityResolver, historyFetcher, metrics, logger)
	rateLimiter := ProvideRateLimiter(cfg, client)
	scoringConfig, err := ProvideScoringConfig(cfg)
	if err != nil {
		return nil, err
	}
	macroCheck := usecase.NewMacroCheck(identityResolver, historyFetcher, rateLimiter, metrics, scoringConfig, logger)
	auctionFetcher := ProvideAuctionFetcher(cfg, xhttpClient, logger)
	auctions := usecase.NewAuctions(identityResolver, auctionFetcher, metrics, logger)
	webhookDeleter := ProvideWebhookDeleter(xhttpClient, logger)
	webhookDelete := usecase.NewWebhookDelete(webhookDeleter, metrics, logger)
	flipCheckHandler := api.NewFlipCheckHandler(logger, flipStats, macroCheck, auctions, webhookDelete)
	xhttpServer := ProvideHTTPServer(cfg, logger, flipCheckHandler)
	bot, err := ProvideDiscordBot(cfg, flipStats, macroCheck, auctions, webhookDelete, logger)
	if err != nil {
		return nil, err
	}
	app := ProvideApp(cfg, logger, xhttpServer, bot, client, producer)
	return app, nil
}
