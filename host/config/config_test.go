package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"dhmeter/host/serial"
)

func TestDefault(t *testing.T) {
	want := &Config{
		Serial:     Serial{Device: "/dev/ttyUSB0", Baud: 115200, ReadTimeoutMillis: 100},
		TickFreq:   16000000,
		Expression: "hz",
		Unit:       "Hz",
		Export:     Export{Sheet: "Readings"},
		LogLevel:   "info",
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
serial:
  device: /dev/ttyACM0
expression: hz * 60 / 2
unit: rpm
export:
  path: run.xlsx
log_level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Serial.Device != "/dev/ttyACM0" || cfg.Serial.Baud != 115200 {
		t.Errorf("Unexpected serial section %+v", cfg.Serial)
	}
	if cfg.Expression != "hz * 60 / 2" || cfg.Unit != "rpm" {
		t.Errorf("Unexpected expression %q %q", cfg.Expression, cfg.Unit)
	}
	if cfg.Export.Path != "run.xlsx" || cfg.Export.Sheet != "Readings" {
		t.Errorf("Unexpected export section %+v", cfg.Export)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %v", cfg.Level())
	}

	want := &serial.Config{Device: "/dev/ttyACM0", Baud: 115200, ReadTimeout: 100}
	if diff := cmp.Diff(want, cfg.SerialConfig()); diff != "" {
		t.Errorf("SerialConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
		err  error
	}{
		{"empty device", "serial:\n  device: \"\"\n", ErrNoDevice},
		{"bad baud", "serial:\n  baud: -1\n", ErrBadBaud},
		{"zero tick freq", "tick_freq: 0\n", ErrTickFreq},
		{"empty expression", "expression: \"\"\n", ErrExpression},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); !errors.Is(err, tc.err) {
				t.Errorf("Expected %v, got %v", tc.err, err)
			}
		})
	}

	if _, err := Parse([]byte("log_level: loud\n")); err == nil {
		t.Errorf("Expected error for unknown log level")
	}
	if _, err := Parse([]byte("unknown_key: 1\n")); err == nil {
		t.Errorf("Expected error for unknown key")
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.Serial.Device != "/dev/ttyUSB0" {
		t.Fatalf("Load(\"\"): %v %+v", err, cfg)
	}

	path := filepath.Join(t.TempDir(), "dhmeter.yaml")
	if err := os.WriteFile(path, []byte("unit: kHz\nexpression: hz / 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Unit != "kHz" {
		t.Errorf("Expected unit kHz, got %q", cfg.Unit)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
