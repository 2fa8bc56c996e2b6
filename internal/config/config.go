package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment        string        `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	Port               string        `envconfig:"PORT" default:"8080"`
	SubmitDelay        time.Duration `envconfig:"SUBMIT_DELAY" default:"1200ms"`
	SubmitFailureRate  float64       `envconfig:"SUBMIT_FAILURE_RATE" default:"0"`
	SeedEvents         bool          `envconfig:"SEED_EVENTS" default:"true"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.SubmitFailureRate < 0 || cfg.SubmitFailureRate > 1 {
		return nil, fmt.Errorf("SUBMIT_FAILURE_RATE must be between 0 and 1, got %v", cfg.SubmitFailureRate)
	}

	return &cfg, nil
}
