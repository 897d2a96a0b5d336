// Package config loads the keepitup configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plexsphere/keepitup/internal/reconcile"
)

const (
	// DefaultLogLevel silences logging; only the exit code is observable.
	DefaultLogLevel = "off"
)

var validLogLevels = []string{"off", "debug", "info", "warn", "error"}

// Config is the top-level keepitup configuration. It is populated from an
// optional YAML file via ReadConfig and then overridden by command-line flags.
type Config struct {
	// ServiceName is the name of the systemd unit to keep running. Required.
	ServiceName string `yaml:"service_name"`

	// MachineName is the host the service runs on. Empty means the local machine.
	MachineName string `yaml:"machine_name"`

	// StopService stops the service instead of keeping it running.
	StopService bool `yaml:"stop_service"`

	// LogLevel is the log level: "off", "debug", "info", "warn", "error".
	// Default: "off"
	LogLevel string `yaml:"log_level"`

	Reconcile reconcile.Config `yaml:"reconcile"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Reconcile.ApplyDefaults()
}

// Validate checks that required fields are set and values are acceptable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return errors.New("config: service name is required")
	}
	valid := false
	for _, lvl := range validLogLevels {
		if c.LogLevel == lvl {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("config: invalid log level %q (must be one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return c.Reconcile.Validate()
}

// ReadConfig reads a YAML configuration file. Defaults are not applied and
// the result is not validated, so command-line overrides can be layered on
// top before calling ApplyDefaults and Validate.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
