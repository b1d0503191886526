// Package config loads CLI configuration. Priority: ENV > YAML file >
// defaults. The file path comes from NUTRIPLAN_CONFIG (fallback
// "./nutriplan.yaml"); a missing default file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`

	// DBPath overrides the default local state database location.
	DBPath string `yaml:"db_path" env:"NUTRIPLAN_DB_PATH"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"NUTRIPLAN_API_BASE_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout"  env:"NUTRIPLAN_API_TIMEOUT"  env-default:"30s"`
	Retries int           `yaml:"retries"  env:"NUTRIPLAN_API_RETRIES"  env-default:"1"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"NUTRIPLAN_LOG_LEVEL" env-default:"warn"`
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api retries must be >= 0, got %d", c.API.Retries)
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("NUTRIPLAN_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./nutriplan.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
