package core

import (
	"testing"

	"dhmeter/sim"
)

func TestModeNames(t *testing.T) {
	testCases := []struct {
		mode Mode
		name string
	}{
		{ModeIdle, "Off"},
		{ModeFrequency, "Frequency"},
		{ModeCapacitance, "Capacitance"},
		{ModeInductance, "Inductance"},
		{Mode(42), "Wibble"},
	}

	for _, tc := range testCases {
		if got := tc.mode.String(); got != tc.name {
			t.Errorf("Mode %d: expected %q, got %q", tc.mode, tc.name, got)
		}
	}
}

func TestPanelIdleClearsValueRow(t *testing.T) {
	lcd := sim.NewLCD(16, 2)
	p := NewPanel(lcd, 16, 2)

	// Leave stale text on the value row first
	p.SetMode(ModeFrequency)
	p.Show(123456)

	p.SetMode(ModeIdle)
	p.Show(999)

	if got := lcd.Line(0); got != "Off             " {
		t.Errorf("Row 0: expected %q, got %q", "Off             ", got)
	}
	if got := lcd.Line(1); got != "                " {
		t.Errorf("Row 1: expected blank, got %q", got)
	}
}

func TestPanelShowFrequency(t *testing.T) {
	lcd := sim.NewLCD(16, 2)
	p := NewPanel(lcd, 16, 2)
	p.SetMode(ModeFrequency)

	values := []struct {
		hz   uint32
		line string
	}{
		{1000000, "1000000Hz       "},
		{1000, "1000Hz          "},
		{0, "0Hz             "},
	}

	for _, v := range values {
		p.Show(v.hz)
		if got := lcd.Line(1); got != v.line {
			t.Errorf("Show(%d): expected %q, got %q", v.hz, v.line, got)
		}
	}
	if got := lcd.Line(0); got != "Frequency       " {
		t.Errorf("Row 0: expected mode name, got %q", got)
	}
}

func TestPanelPlaceholderModes(t *testing.T) {
	for _, mode := range []Mode{ModeCapacitance, ModeInductance, Mode(9)} {
		lcd := sim.NewLCD(16, 2)
		p := NewPanel(lcd, 16, 2)
		p.SetMode(mode)
		p.Show(5)
		if got := lcd.Line(1); got != "5 gold rings    " {
			t.Errorf("Mode %s: expected placeholder, got %q", mode, got)
		}
	}
}

func TestPanelSplashAndTruncate(t *testing.T) {
	lcd := sim.NewLCD(8, 2)
	p := NewPanel(lcd, 8, 2)

	p.Splash("dhMeter", "(c) dh   GPLv3", "dropped")
	if got := lcd.Line(0); got != "dhMeter " {
		t.Errorf("Row 0: expected %q, got %q", "dhMeter ", got)
	}
	if got := lcd.Line(1); got != "(c) dh  " {
		t.Errorf("Row 1: expected truncated line, got %q", got)
	}
	if lcd.Flushes != 1 {
		t.Errorf("Expected one flush, got %d", lcd.Flushes)
	}
}
