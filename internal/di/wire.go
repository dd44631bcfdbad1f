//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"FlipCheck/internal/handler/api"
	"FlipCheck/internal/usecase"
	"FlipCheck/pkg/config"
	"FlipCheck/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideRedis,
		ProvideMetrics,
		ProvideHTTPClient,

		// Upstream services
		ProvideIdentityResolver,
		ProvideHistoryFetcher,
		ProvideAuctionFetcher,
		ProvideWebhookDeleter,
		ProvideRateLimiter,
		ProvideScoringConfig,

		// Use cases
		usecase.NewFlipStats,
		usecase.NewMacroCheck,
		usecase.NewAuctions,
		usecase.NewWebhookDelete,

		// Transports
		api.NewFlipCheckHandler,
		ProvideHTTPServer,
		ProvideDiscordBot,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
