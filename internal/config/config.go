// Package config loads the client's toml configuration file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full set of options a client invocation accepts, per
// spec.md's external-interfaces section.
type Config struct {
	Server    string `toml:"server"`
	Port      uint16 `toml:"port"`
	Account   string `toml:"account"`
	Password  string `toml:"password"`
	Character string `toml:"character"`

	TimeoutSeconds int `toml:"timeout"`

	Capture string `toml:"capture"`
	Replay  string `toml:"replay"`

	CacheEnabled bool   `toml:"cache_enabled"`
	CachePath    string `toml:"cache_path"`
}

// Load reads and validates a Config from path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the load-time invariants spec.md requires: a
// capture and a replay path are mutually exclusive, and a server must
// be named unless replaying a prior capture.
func (c *Config) Validate() error {
	if c.Capture != "" && c.Replay != "" {
		return fmt.Errorf("config: capture and replay are mutually exclusive")
	}
	if c.Server == "" && c.Replay == "" {
		return fmt.Errorf("config: server is required unless replay is set")
	}
	if c.Replay == "" {
		if c.Account == "" {
			return fmt.Errorf("config: account is required")
		}
		if c.Password == "" {
			return fmt.Errorf("config: password is required")
		}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
