// Package config loads the application configuration: a YAML file when one
// is given, environment overrides on top, defaults underneath.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/llm"
	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
)

// Config is the full application configuration.
type Config struct {
	Server     Server             `yaml:"server"`
	Database   store.Config       `yaml:"database"`
	Thresholds attempt.Thresholds `yaml:"thresholds"`
	LLM        llm.Config         `yaml:"llm"`
	LogLevel   string             `yaml:"log_level"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// StepTimeout bounds one orchestrator step, collaborator call included.
	StepTimeout time.Duration `yaml:"step_timeout"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			StepTimeout:     60 * time.Second,
		},
		Database:   store.DefaultConfig(),
		Thresholds: attempt.DefaultThresholds(),
		LLM:        llm.DefaultConfig(),
		LogLevel:   "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.LLM.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("RECALL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("RECALL_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("RECALL_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("RECALL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	c.LLM = c.LLM.FromEnv()
}
