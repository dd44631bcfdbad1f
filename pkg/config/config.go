package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Enabled         bool          `yaml:"enabled" default:"true"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors"`
	} `yaml:"server"`
	Metrics struct {
		Path string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logging struct {
		Level     string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format    string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic" default:"flipcheck.errors"`
			FlushInterval  time.Duration `yaml:"flush_interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Compression  string        `yaml:"compression" default:"gzip"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Discord struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Token   string `yaml:"token"`
		GuildID string `yaml:"guild_id"` // empty registers commands globally
	} `yaml:"discord"`
	Upstream struct {
		MojangURL    string        `yaml:"mojang_url" default:"https://api.mojang.com" validate:"url"`
		CoflnetURL   string        `yaml:"coflnet_url" default:"https://sky.coflnet.com" validate:"url"`
		HypixelURL   string        `yaml:"hypixel_url" default:"https://api.hypixel.net" validate:"url"`
		HypixelKey   string        `yaml:"hypixel_key"`
		Timeout      time.Duration `yaml:"timeout" default:"10s"`
		Attempts     int           `yaml:"attempts" default:"2" validate:"gte=1,lte=5"`
		RetryBackoff time.Duration `yaml:"retry_backoff" default:"300ms"`
		UserAgent    string        `yaml:"user_agent" default:"FlipCheck/1.0"`
	} `yaml:"upstream"`
	RateLimit struct {
		MacroCheckInterval time.Duration `yaml:"macro_check_interval" default:"20s"`
		Redis              struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"flipcheck:ratelimit"`
		} `yaml:"redis"`
	} `yaml:"rate_limit"`
	Scoring Scoring `yaml:"scoring"`
}

// Scoring holds the heuristic constants. One documented set; see DESIGN.md.
type Scoring struct {
	ProfitReference       int64         `yaml:"profit_reference" default:"150000000" validate:"gt=0"`
	HourReference         float64       `yaml:"hour_reference" default:"90" validate:"gt=0"`
	MaxFlippingHours      int           `yaml:"max_flipping_hours" default:"168" validate:"gt=0"`
	ActiveHourMinTrades   int           `yaml:"active_hour_min_trades" default:"2" validate:"gte=1"`
	OffHours              []int         `yaml:"off_hours" validate:"dive,gte=0,lte=23"`
	HeavyNightMinTrades   int           `yaml:"heavy_night_min_trades" default:"3" validate:"gte=1"`
	HeavyNightsToFlag     int           `yaml:"heavy_nights_to_flag" default:"4" validate:"gte=1"`
	ReactionCeiling       time.Duration `yaml:"reaction_ceiling" default:"5m" validate:"gt=0"`
	FastReactionThreshold time.Duration `yaml:"fast_reaction_threshold" default:"2m"`
	ProfitWeight          float64       `yaml:"profit_weight" default:"1" validate:"gte=0"`
	HourWeight            float64       `yaml:"hour_weight" default:"4" validate:"gte=0"`
	ReactionWeight        float64       `yaml:"reaction_weight" default:"0.2" validate:"gte=0"`
	PatternWeight         float64       `yaml:"pattern_weight" default:"0.2" validate:"gte=0"`
	HighSuspicion         float64       `yaml:"high_suspicion" default:"50"`
	ProfitFactor          string        `yaml:"profit_factor" default:"0.022"`
	Timezone              string        `yaml:"timezone" default:"UTC"`
}

var validate = validator.New()

// Default returns a config populated only from default tags.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	c.Scoring.OffHours = []int{22, 23, 0, 1, 2, 3, 4, 5}
	return &c
}

// Load reads and parses a YAML configuration file over the defaults.
// A missing file yields defaults.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, then applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		c.Discord.Token = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		c.Discord.GuildID = v
	}
	if v := os.Getenv("HYPIXEL_API_KEY"); v != "" {
		c.Upstream.HypixelKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RateLimit.Redis.Addr = v
		c.RateLimit.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RateLimit.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Discord.Enabled && c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required when discord is enabled (set DISCORD_TOKEN)")
	}
	if !c.Discord.Enabled && !c.Server.Enabled {
		return fmt.Errorf("at least one of discord or server must be enabled")
	}
	if c.Logging.Collector.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("logging.collector requires kafka.brokers")
	}
	if _, err := time.LoadLocation(c.Scoring.Timezone); err != nil {
		return fmt.Errorf("scoring.timezone: %w", err)
	}
	if c.Scoring.ProfitWeight+c.Scoring.HourWeight+c.Scoring.ReactionWeight+c.Scoring.PatternWeight <= 0 {
		return fmt.Errorf("scoring weights must not all be zero")
	}
	return nil
}
