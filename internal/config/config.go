package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Tally"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"expenses.db"`
	}

	Log struct {
		Level   slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
		TUIFile string     `envconfig:"TUI_LOG_FILE" default:"tally-tui.log"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	// Categories is the vocabulary offered by the UI and enforced by input parsing.
	// The store itself accepts any non-empty category.
	Categories []string `envconfig:"CATEGORIES" default:"Salary,Bonus,Food,Transport,Shopping,Utilities,Health,Other"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DB.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}

	return &cfg, nil
}
