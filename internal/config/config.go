// Package config loads the service's configuration: secrets and the
// environment name from .env / process environment (github.com/joho/
// godotenv), and typed per-pipeline sections from config/<env>.toml
// (github.com/BurntSushi/toml). Parse failures are fatal at construction;
// runtime code only ever sees validated values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Env is the deployment environment name, also the config/<env>.toml
// file stem.
type Env string

const (
	EnvLocal Env = "local"
	EnvDev   Env = "dev"
	EnvProd  Env = "prod"
)

// Config is the fully resolved, validated configuration.
type Config struct {
	Env         Env
	Port        int
	BindAddress string

	MongoURL string

	Log     LogConfig
	Tinkoff TinkoffConfig
	Moex    MoexConfig

	Pipelines PipelinesConfig
}

// LogConfig controls internal/logging.New.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "pretty" or "json"
}

// TinkoffConfig configures the gRPC channel to the brokerage API.
type TinkoffConfig struct {
	Domain           string `toml:"domain"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	KeepaliveSeconds int    `toml:"keepalive_seconds"`
	Token            string `toml:"-"` // from TINKOFF_TOKEN, never in TOML
}

// MoexConfig is the moex_api section; base_url is required by validation.
// internal/moex.New does not read it: the client's base URL and its
// 10-second timeout are fixed in that package.
type MoexConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PipelineWindow is the per-pipeline schedule section shared by the
// reference refresher, FX refresher, and enrichment worker.
type PipelineWindow struct {
	Enabled         bool   `toml:"enabled"`
	IntervalSeconds uint64 `toml:"interval_seconds"`
	UpdateStartTime string `toml:"update_start_time"`
	UpdateEndTime   string `toml:"update_end_time"`
	Timezone        string `toml:"timezone"`
}

// HistoricalWindow extends PipelineWindow with the backfill's own knobs.
type HistoricalWindow struct {
	PipelineWindow `toml:",inline"`
	MaxDaysHistory int `toml:"max_days_history"`
	RequestDelayMs int `toml:"request_delay_ms"`
}

// LiveWindow extends PipelineWindow with the streamer's reconnect policy.
// Only Enabled is honored; its interval, start/end time and Timezone
// fields are unused (the streamer runs continuously once started) but
// kept for section uniformity.
type LiveWindow struct {
	PipelineWindow    `toml:",inline"`
	ReconnectAttempts int `toml:"reconnect_attempts"`
}

// PipelinesConfig groups every pipeline's schedule section.
type PipelinesConfig struct {
	Reference  PipelineWindow   `toml:"reference"`
	Historical HistoricalWindow `toml:"historical"`
	Live       LiveWindow       `toml:"live"`
	Fx         PipelineWindow   `toml:"fx"`
	Enrichment PipelineWindow   `toml:"enrichment"`
}

// fileConfig is the shape of config/<env>.toml; Tinkoff.Token and MongoURL
// never appear here, only in secrets.
type fileConfig struct {
	Log       LogConfig       `toml:"log"`
	Tinkoff   TinkoffConfig   `toml:"tinkoff_api"`
	Moex      MoexConfig      `toml:"moex_api"`
	Pipelines PipelinesConfig `toml:"pipelines"`
}

// Load reads .env (if present), the process environment, and
// config/<env>.toml, and returns a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	envName := Env(getEnv("ENV", string(EnvLocal)))

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("config: PORT must be a number: %w", err)
	}

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		return nil, fmt.Errorf("config: MONGO_URL is not set")
	}

	token := os.Getenv("TINKOFF_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("config: TINKOFF_TOKEN is not set")
	}

	var fc fileConfig
	path := fmt.Sprintf("config/%s.toml", envName)
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	fc.Tinkoff.Token = token

	cfg := &Config{
		Env:         envName,
		Port:        port,
		BindAddress: getEnv("BIND_ADDRESS", "0.0.0.0"),
		MongoURL:    mongoURL,
		Log:         fc.Log,
		Tinkoff:     fc.Tinkoff,
		Moex:        fc.Moex,
		Pipelines:   fc.Pipelines,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tinkoff.Domain == "" {
		return fmt.Errorf("config: tinkoff_api.domain is required")
	}
	if c.Moex.BaseURL == "" {
		return fmt.Errorf("config: moex_api.base_url is required")
	}
	windows := map[string]PipelineWindow{
		"reference":  c.Pipelines.Reference,
		"historical": c.Pipelines.Historical.PipelineWindow,
		"fx":         c.Pipelines.Fx,
		"enrichment": c.Pipelines.Enrichment,
	}
	for name, w := range windows {
		if !w.Enabled {
			continue
		}
		if _, err := NewWindowPredicate(w); err != nil {
			return fmt.Errorf("config: pipelines.%s: %w", name, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LogPretty reports whether logging should use the human-readable console
// writer.
func (c *Config) LogPretty() bool {
	return c.Log.Format == "pretty"
}
