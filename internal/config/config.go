// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the TOML configuration of the datefmt command.
//
// A configuration file looks like this, every key is optional:
//
//	location = "Europe/Berlin"
//
//	[cache]
//	capacity = 500
//
//	[log]
//	level = "info"
//	format = "text"
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"gonih.org/datefmt"
	"gonih.org/datefmt/internal/logging"
)

// EnvVar names the environment variable consulted for the configuration
// file when no path is given.
const EnvVar = "DATEFMT_CONFIG"

// Config is the complete configuration.
type Config struct {
	// Location is an IANA time zone name, "UTC" or "Local".
	Location string      `toml:"location"`
	Cache    CacheConfig `toml:"cache"`
	Log      LogConfig   `toml:"log"`
}

// CacheConfig configures the formatter cache.
type CacheConfig struct {
	Capacity int `toml:"capacity"`
}

// LogConfig configures logging to stderr.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from path. If path is empty, the file named
// by EnvVar is read, and if that is unset too, the defaults are returned.
// Unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.applyDefaults()
	if problems := cfg.validate(); len(problems) > 0 {
		return nil, fmt.Errorf("config %s:\n%s", path, strings.Join(problems, "\n"))
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Location == "" {
		c.Location = "Local"
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = datefmt.DefaultCacheCapacity
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// validate returns a description of every invalid value.
func (c *Config) validate() []string {
	var problems []string
	if c.Cache.Capacity < 0 {
		problems = append(problems, fmt.Sprintf("cache.capacity must not be negative, got %d", c.Cache.Capacity))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, "log.level: "+err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "plain", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if _, err := c.LoadLocation(); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}

// LoadLocation returns the configured location.
func (c *Config) LoadLocation() (*time.Location, error) {
	switch c.Location {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "location %q", c.Location)
	}
	return loc, nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}
