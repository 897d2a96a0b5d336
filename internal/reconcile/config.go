package reconcile

import (
	"errors"
	"time"
)

// Config holds the configuration for a reconciliation run.
// Config is passed as a constructor argument; this package does no file I/O.
type Config struct {
	// Timeout bounds a single driven transition, measured from the first
	// primitive invocation. A restart shares one Timeout across stop and start.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// PollInterval is the time between state checks while waiting for a
	// transition to complete.
	// Default: 250ms
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultTimeout is the default transition deadline.
const DefaultTimeout = 60 * time.Second

// DefaultPollInterval is the default poll cadence.
const DefaultPollInterval = 250 * time.Millisecond

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	// A deadline shorter than the poll cadence is valid; poll at the deadline instead.
	if c.Timeout > 0 && c.PollInterval > c.Timeout {
		c.PollInterval = c.Timeout
	}
}

// Validate checks that configuration values are acceptable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("reconcile: config: Timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return errors.New("reconcile: config: PollInterval must be positive")
	}
	return nil
}
