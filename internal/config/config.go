package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the arc CLI configuration. Sources apply in order: defaults, the
// YAML file, then ARCANE_* environment variables.
type Config struct {
	// DBPath is the SQLite file; empty means ~/.arcane.db.
	DBPath string `yaml:"db_path" env:"ARCANE_DB_PATH"`
	// Timezone decides where one day ends. Empty or "Local" uses the system zone.
	Timezone string    `yaml:"timezone" env:"ARCANE_TIMEZONE"`
	Log      LogConfig `yaml:"log" envPrefix:"ARCANE_LOG_"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"` // debug, info, warn, error
	JSON  bool   `yaml:"json" env:"JSON"`
}

func Default() *Config {
	return &Config{
		Timezone: "Local",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/arcane/config.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "arcane", "config.yaml"), nil
}

// Load reads the config file at path and applies environment overrides. An
// empty path means DefaultPath, which may be absent; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
