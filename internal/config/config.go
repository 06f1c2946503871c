// Package config loads the analyzer configuration from an optional YAML
// file, with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given
const DefaultPath = "gnlp.yaml"

// Config is the top-level application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds the language service endpoint and credentials
type APIConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Key      string        `yaml:"key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// OutputConfig controls where analysis files are written
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls log level and handler format
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the configuration at path, applies GNLP_* environment
// overrides and fills defaults. A missing file at the default path is fine;
// a missing file the user asked for by flag is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GNLP_API_ENDPOINT"); v != "" {
		cfg.API.Endpoint = v
	}
	if v := os.Getenv("GNLP_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("GNLP_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("GNLP_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GNLP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GNLP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = "https://language.googleapis.com"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./data"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
