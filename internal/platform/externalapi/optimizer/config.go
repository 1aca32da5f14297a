// Package optimizer provides a client for the external portfolio optimisation engine.
package optimizer

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config holds configuration for the optimisation engine client.
type Config struct {
	BaseURL        string        `validate:"required,url"`                  // e.g. "http://localhost:5000"
	OptimisePath   string        `default:"/optimise" validate:"required"` // Path of the optimisation endpoint
	ConnectTimeout time.Duration `default:"5s"`                            // TCP connect timeout
	ReadTimeout    time.Duration `default:"30s"`                           // Time to wait for response headers
	Timeout        time.Duration `default:"60s"`                           // Whole request timeout
}

// LoadConfig loads engine configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("optimizer config defaults: %w", err)
	}
	if v := os.Getenv("ENGINE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ENGINE_OPTIMISE_PATH"); v != "" {
		cfg.OptimisePath = v
	}
	var err error
	if cfg.ConnectTimeout, err = durationEnv("ENGINE_CONNECT_TIMEOUT", cfg.ConnectTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = durationEnv("ENGINE_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = durationEnv("ENGINE_TIMEOUT", cfg.Timeout); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("optimizer config: %w", err)
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
