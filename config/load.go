package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFromToml reads, parses and validates a TOML configuration file.
func LoadFromToml(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read file %s: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		logger.Error("failed to unmarshal TOML config", "path", path, "error", err)
		return nil, fmt.Errorf("config: failed to unmarshal TOML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		logger.Error("configuration validation failed", "path", path, "error", err)
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg.Source = path
	logger.Info("successfully loaded configuration", "path", path)
	return cfg, nil
}
