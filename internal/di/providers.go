package di

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"FlipCheck/internal/domain/repository"
	"FlipCheck/internal/handler/api"
	"FlipCheck/internal/handler/discord"
	"FlipCheck/internal/service/coflnet"
	"FlipCheck/internal/service/hypixel"
	"FlipCheck/internal/service/mojang"
	"FlipCheck/internal/service/ratelimit"
	"FlipCheck/internal/service/webhook"
	"FlipCheck/internal/services/analytics"
	"FlipCheck/internal/usecase"
	"FlipCheck/pkg/config"
	xhttp "FlipCheck/pkg/http"
	pkgkafka "FlipCheck/pkg/kafka"
	applogger "FlipCheck/pkg/logger"
	"FlipCheck/pkg/metrics"
	"FlipCheck/pkg/server"
	"FlipCheck/pkg/util"
)

// ProvideKafkaProducer creates the producer behind the error-log collector.
// Nil when the collector is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Logging.Collector.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the application logger and attaches the collector.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collector.FlushInterval,
			CountThreshold: cfg.Logging.Collector.CountThreshold,
			Topic:          cfg.Logging.Collector.Topic,
			Publisher:      producer,
		})
	}
	l.Info("config loaded",
		applogger.String("env", cfg.Environment),
		applogger.String("discord_token", util.MaskSecret(cfg.Discord.Token)),
		applogger.String("hypixel_key", util.MaskSecret(cfg.Upstream.HypixelKey)),
		applogger.Strings("kafka_brokers", cfg.Kafka.Brokers),
	)
	return l, nil
}

// ProvideRedis returns a client when the shared rate limiter is enabled.
func ProvideRedis(cfg *config.Config) *redis.Client {
	if !cfg.RateLimit.Redis.Enabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.Redis.Addr,
		Password: cfg.RateLimit.Redis.Password,
		DB:       cfg.RateLimit.Redis.DB,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideHTTPClient is shared by every upstream client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Upstream.Timeout),
		xhttp.WithRetry(cfg.Upstream.Attempts, cfg.Upstream.RetryBackoff),
		xhttp.WithUserAgent(cfg.Upstream.UserAgent),
	)
}

func ProvideIdentityResolver(cfg *config.Config, c *xhttp.Client, l *applogger.Logger) repository.IdentityResolver {
	return mojang.New(cfg.Upstream.MojangURL, c, l)
}

func ProvideHistoryFetcher(cfg *config.Config, c *xhttp.Client, l *applogger.Logger) repository.HistoryFetcher {
	return coflnet.New(cfg.Upstream.CoflnetURL, c, l)
}

func ProvideAuctionFetcher(cfg *config.Config, c *xhttp.Client, l *applogger.Logger) repository.AuctionFetcher {
	return hypixel.New(cfg.Upstream.HypixelURL, cfg.Upstream.HypixelKey, c, l)
}

func ProvideWebhookDeleter(c *xhttp.Client, l *applogger.Logger) repository.WebhookDeleter {
	return webhook.New(c, l)
}

// ProvideRateLimiter picks Redis when a client is configured, memory otherwise.
func ProvideRateLimiter(cfg *config.Config, rdb *redis.Client) repository.RateLimiter {
	if rdb != nil {
		return ratelimit.NewRedis(rdb, cfg.RateLimit.Redis.Prefix, cfg.RateLimit.MacroCheckInterval)
	}
	return ratelimit.New(cfg.RateLimit.MacroCheckInterval)
}

func ProvideScoringConfig(cfg *config.Config) (analytics.ScoringConfig, error) {
	sc, err := analytics.NewScoringConfig(cfg.Scoring)
	if err != nil {
		return analytics.ScoringConfig{}, fmt.Errorf("scoring config: %w", err)
	}
	return sc, nil
}

// ProvideDiscordBot returns nil when Discord is disabled.
func ProvideDiscordBot(
	cfg *config.Config,
	flipStats *usecase.FlipStats,
	macroCheck *usecase.MacroCheck,
	auctions *usecase.Auctions,
	webhooks *usecase.WebhookDelete,
	l *applogger.Logger,
) (*discord.Bot, error) {
	if !cfg.Discord.Enabled {
		return nil, nil
	}
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return discord.NewBot(session, cfg.Discord.GuildID, flipStats, macroCheck, auctions, webhooks, l), nil
}

// ProvideHTTPServer returns nil when the HTTP surface is disabled.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, h *api.FlipCheckHandler) *xhttp.Server {
	if !cfg.Server.Enabled {
		return nil
	}
	return xhttp.NewServer(l, []xhttp.Handler{h},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(cfg.Metrics.Path),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	bot *discord.Bot,
	rdb *redis.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, httpServer, bot, rdb, producer)
}
