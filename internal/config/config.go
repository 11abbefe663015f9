// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/tutor/internal/llm"
)

type Config struct {
	// Server
	Port       int   `env:"PORT" envDefault:"3001"`
	TrustProxy bool  `env:"TUTOR_TRUST_PROXY" envDefault:"false"`
	BodyLimit  int64 `env:"TUTOR_BODY_LIMIT" envDefault:"10485760"`

	CORSOrigins []string `env:"TUTOR_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	ShutdownTimeout time.Duration `env:"TUTOR_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Per-client rate limit: RateLimit requests per RateWindow. Zero disables.
	RateLimit  int           `env:"TUTOR_RATE_LIMIT" envDefault:"100"`
	RateWindow time.Duration `env:"TUTOR_RATE_WINDOW" envDefault:"15m"`

	Log     LogConfig     `envPrefix:"LOG_"`
	Session SessionConfig `envPrefix:"TUTOR_SESSION_"`
	Redis   RedisConfig   `envPrefix:"TUTOR_REDIS_"`
	Otel    OtelConfig    `envPrefix:"OTEL_"`

	// Event log. Empty DBPath means store.DefaultDBPath.
	EventLog bool   `env:"TUTOR_EVENT_LOG" envDefault:"true"`
	DBPath   string `env:"TUTOR_DB"`

	LLM llm.Config
}

type LogConfig struct {
	Mode     string `env:"MODE" envDefault:"dev"`
	Level    string `env:"LEVEL"`
	Redact   bool   `env:"REDACT" envDefault:"true"`
	HashSalt string `env:"HASH_SALT"`
}

type SessionConfig struct {
	// Backend is "memory" or "redis".
	Backend  string        `env:"BACKEND" envDefault:"memory"`
	Capacity int           `env:"CAPACITY" envDefault:"1000"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	Prefix   string `env:"PREFIX" envDefault:"tutor:session:"`
}

type OtelConfig struct {
	Enabled     bool              `env:"ENABLED" envDefault:"false"`
	ServiceName string            `env:"SERVICE_NAME" envDefault:"tutor"`
	Environment string            `env:"ENVIRONMENT"`
	SampleRatio float64           `env:"SAMPLER_RATIO" envDefault:"0.1"`
	Endpoint    string            `env:"EXPORTER_OTLP_ENDPOINT"`
	Headers     map[string]string `env:"EXPORTER_OTLP_HEADERS"`
	Insecure    bool              `env:"EXPORTER_OTLP_INSECURE"`
}

// Load reads the server and LLM configuration.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	llmCfg, err := llm.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.LLM = llmCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with. A missing LLM key is
// not an error here: the server starts and the first generation call fails.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch strings.ToLower(c.Session.Backend) {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.Session.Capacity < 0 {
		return fmt.Errorf("session capacity must not be negative")
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("rate window must be positive when a rate limit is set")
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		return fmt.Errorf("otel sampler ratio must be in [0,1], got %v", c.Otel.SampleRatio)
	}
	return nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
