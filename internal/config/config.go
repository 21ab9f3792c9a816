// Package config loads project-scoped PyBuilder configuration.
//
// Configuration lives in a .pybuilder.yaml file at the project root and is
// optional: a missing file yields the defaults. Environment files (.env,
// .env.local) next to it are loaded into the process environment without
// overriding existing variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional configuration file name at the project root.
const FileName = ".pybuilder.yaml"

// Config represents the project configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Lint        LintConfig        `yaml:"lint"`
	Daemon      DaemonConfig      `yaml:"daemon"`
	EventStore  EventStoreConfig  `yaml:"eventstore"`

	// Env holds project-scoped environment-variable-like settings that take
	// precedence over the process environment in Getenv lookups.
	Env map[string]string `yaml:"env,omitempty"`
}

// EnvironmentConfig configures virtual environment resolution.
type EnvironmentConfig struct {
	// Virtualenv is an explicit environment path; relative paths are
	// resolved against the project root. Empty means "consult VIRTUAL_ENV".
	Virtualenv string `yaml:"virtualenv,omitempty"`
}

// LintConfig configures the diagnostics subsystem.
type LintConfig struct {
	Linter string `yaml:"linter,omitempty"` // "pylint" (default)
}

// DaemonConfig configures daemon mode.
type DaemonConfig struct {
	RescanInterval time.Duration `yaml:"rescan_interval,omitempty"`
	MetricsListen  string        `yaml:"metrics_listen,omitempty"`
	NATSURL        string        `yaml:"nats_url,omitempty"`
	NATSSubject    string        `yaml:"nats_subject,omitempty"`
}

// EventStoreConfig configures the build event store.
type EventStoreConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite path; empty disables persistence
}

// Load reads the configuration for the project rooted at root.
// A missing configuration file is not an error; defaults apply.
func Load(root string) (*Config, error) {
	loadEnvFiles(root)

	cfg := defaultConfig()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Lint.Linter == "" {
		cfg.Lint.Linter = "pylint"
	}
	if cfg.Daemon.RescanInterval <= 0 {
		cfg.Daemon.RescanInterval = 30 * time.Second
	}
	if cfg.Daemon.NATSSubject == "" {
		cfg.Daemon.NATSSubject = "pybuilder.events"
	}
}

// Getenv resolves a project-scoped environment lookup: the config env map
// wins over the process environment. The empty string means "unset".
func (c *Config) Getenv(name string) string {
	if c != nil {
		if value, ok := c.Env[name]; ok {
			return value
		}
	}
	return os.Getenv(name)
}
