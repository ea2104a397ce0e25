// Package config loads the CLI configuration: a TOML file with an
// environment-variable override pass.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix for override environment variables.
const EnvPrefix = "ZCURSES_"

// Config is the full CLI configuration.
type Config struct {
	Log Log `toml:"log"`
}

// Log configures the diagnostic log sink. The terminal itself belongs to
// the display session, so logs go to a file.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
	}
}

// Load reads a TOML configuration file and applies environment
// overrides. An empty path skips the file and starts from defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if _, err := cfg.Log.ZerologLevel(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides file values from ZCURSES_-prefixed variables.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// ZerologLevel parses the configured log level.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("bad log level %q: %w", l.Level, err)
	}
	return lvl, nil
}
