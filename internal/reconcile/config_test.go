package reconcile

import (
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 60*time.Second)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, 250*time.Millisecond)
	}
}

func TestConfig_DefaultsPreserveExisting(t *testing.T) {
	cfg := Config{
		Timeout:      5 * time.Second,
		PollInterval: 100 * time.Millisecond,
	}
	cfg.ApplyDefaults()

	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 5*time.Second)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, 100*time.Millisecond)
	}
}

func TestConfig_ValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := Config{Timeout: -1 * time.Second, PollInterval: time.Millisecond}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for negative Timeout")
	}
}

func TestConfig_ValidateRejectsNegativePollInterval(t *testing.T) {
	cfg := Config{Timeout: time.Second, PollInterval: -time.Millisecond}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for negative PollInterval")
	}
}

func TestConfig_DefaultsClampPollIntervalToTimeout(t *testing.T) {
	cfg := Config{Timeout: 100 * time.Millisecond}
	cfg.ApplyDefaults()

	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, 100*time.Millisecond)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_ValidateAcceptsPollIntervalAboveTimeout(t *testing.T) {
	cfg := Config{Timeout: 100 * time.Millisecond, PollInterval: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_ValidateAcceptsDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_ValidateAcceptsShortTimeout(t *testing.T) {
	cfg := Config{Timeout: 500 * time.Millisecond}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
