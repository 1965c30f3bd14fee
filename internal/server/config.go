package server

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the HTTP server settings. Values come from BSTAR_*
// environment variables, optionally seeded from a .env file.
type Config struct {
	Addr        string        `envconfig:"ADDR" default:":8080"`
	CatalogPath string        `envconfig:"CATALOG_PATH" default:"configs/catalog.json"`
	Tick        time.Duration `envconfig:"TICK" default:"1s"`
	DaysPerTick float64       `envconfig:"DAYS_PER_TICK" default:"1"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoadConfig reads a .env file when present and then the environment.
func LoadConfig() (Config, error) {
	// A missing .env file is not an error; the environment wins anyway.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("bstar", &cfg); err != nil {
		return Config{}, fmt.Errorf("server config: %w", err)
	}
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("server config: tick must be positive, got %s", cfg.Tick)
	}
	if cfg.DaysPerTick <= 0 {
		return Config{}, fmt.Errorf("server config: days per tick must be positive, got %g", cfg.DaysPerTick)
	}
	return cfg, nil
}
