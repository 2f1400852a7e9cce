package core

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"default", func(c *Config) {}, nil},
		{"rp2040", func(c *Config) { c.TickFreq = TickFreqRP2040 }, nil},
		{"slow clock", func(c *Config) { c.TickFreq = 999 }, ErrTickFreq},
		{"zero gate", func(c *Config) { c.GateMillis = 0 }, ErrGateLength},
		{"gate too long", func(c *Config) { c.TickFreq = TickFreqRP2040; c.GateMillis = 20000 }, ErrGateLength},
		{"one row", func(c *Config) { c.Rows = 1 }, ErrDisplay},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.err) {
				t.Errorf("Expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestConfigGateTicks(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GateTicks(); got != 16000000 {
		t.Errorf("Expected 16000000 gate ticks, got %d", got)
	}
}
