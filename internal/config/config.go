// Package config loads calfront's CLI-level settings — trace-bus logging,
// diagnostic limits, color output, and an encoding override for the source
// loader. It never reaches into lexer/parser behavior, which stays pure and
// synchronous per §5; this is strictly ambient CLI configuration.
//
// Built on spf13/viper with the usual defaulting/env/file-search pattern:
// explicit defaults, a CALFRONT_ env prefix, then an optional calfront.yml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is calfront's CLI configuration. Each setting is resolved from a
// CALFRONT_-prefixed environment variable first, then calfront.yml /
// calfront.yaml (if present), then the defaults; see Load.
type Config struct {
	Trace       TraceConfig  `mapstructure:"trace"`
	Diagnostics DiagConfig   `mapstructure:"diagnostics"`
	Output      OutputConfig `mapstructure:"output"`
	Encoding    string       `mapstructure:"encoding"` // "", "utf-8", "utf-16le", "utf-16be" override
}

type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DiagConfig struct {
	MaxDiagnostics int `mapstructure:"max"`
}

type OutputConfig struct {
	Color bool   `mapstructure:"color"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load reads calfront.yml/calfront.yaml from the current directory (if
// present), layers CALFRONT_*-prefixed environment variables over it, and
// falls back to sane defaults otherwise.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("trace.enabled", false)
	v.SetDefault("diagnostics.max", 200)
	v.SetDefault("output.color", true)
	v.SetDefault("output.format", "text")
	v.SetDefault("encoding", "")

	v.SetConfigName("calfront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CALFRONT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: output.format must be 'text' or 'json', got %q", cfg.Output.Format)
	}
	switch strings.ToLower(cfg.Encoding) {
	case "", "utf-8", "utf-16le", "utf-16be":
	default:
		return fmt.Errorf("config: encoding must be one of '', 'utf-8', 'utf-16le', 'utf-16be', got %q", cfg.Encoding)
	}
	if cfg.Diagnostics.MaxDiagnostics <= 0 {
		return fmt.Errorf("config: diagnostics.max must be positive, got %d", cfg.Diagnostics.MaxDiagnostics)
	}
	return nil
}

// FindProjectRoot walks up from the current directory looking for a
// calfront.yml/calfront.yaml. calfront has no notion of an "app" directory
// fallback — it is a library/CLI, not a project scaffold — so absence of a
// config file simply means "use defaults from here."
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{"calfront.yml", "calfront.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: no calfront.yml found from %s upward", dir)
		}
		dir = parent
	}
}
