package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config drives the harness: which solver binary to talk to and how
// chatty to be. Values come from config.yaml when present, overridden
// by CANDYSHARE_* environment variables.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Log    LogConfig    `yaml:"log"`
}

// SolverConfig configures the external solver collaborator.
type SolverConfig struct {
	Command    string   `yaml:"command" env:"CANDYSHARE_SOLVER"`
	Args       []string `yaml:"args" env:"CANDYSHARE_SOLVER_ARGS" envSeparator:" "`
	Logic      string   `yaml:"logic" env:"CANDYSHARE_LOGIC"`
	TimeoutMS  int      `yaml:"timeout_ms" env:"CANDYSHARE_TIMEOUT_MS"`
	Transcript string   `yaml:"transcript" env:"CANDYSHARE_TRANSCRIPT"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level" env:"CANDYSHARE_LOG_LEVEL"`
}

// DefaultConfig talks to z3 on stdin with no time limit.
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Command: "z3",
			Args:    []string{"-in"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads path when it exists, then applies environment
// overrides. A missing file is fine; a malformed one is not.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a slog logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
