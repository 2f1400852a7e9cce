package core

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"dhmeter/protocol"
	"dhmeter/sim"

	"github.com/google/go-cmp/cmp"
)

type recordingReporter struct {
	identified []Config
	reports    []protocol.Report
}

func (r *recordingReporter) Identify(cfg Config) {
	r.identified = append(r.identified, cfg)
}

func (r *recordingReporter) Report(seq uint32, mode Mode, s Sample) {
	r.reports = append(r.reports, protocol.Report{
		Seq: seq, Mode: uint8(mode), Pulses: s.Pulses, Ticks: s.Ticks, Start: uint32(s.Start),
	})
}

func newSimMeter(cfg Config, rate uint64, opts ...Option) (*Meter, *sim.Clock, *sim.LCD) {
	clk := sim.NewClock(cfg.TickFreq, 5)
	ticks := sim.NewTickRegister(clk, 16)
	pulses := sim.NewPulseRegister(clk, rate, 8)
	lcd := sim.NewLCD(cfg.Columns, cfg.Rows)
	return NewMeter(cfg, ticks, pulses, lcd, opts...), clk, lcd
}

func TestMeterSetup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickFreq = 1000000
	rep := &recordingReporter{}
	m, clk, lcd := newSimMeter(cfg, 1000, WithReporter(rep))

	m.Setup()

	if clk.Now() < 2000000 {
		t.Errorf("Expected the greeting to stay up for 2 s, clock at %d", clk.Now())
	}
	if got := lcd.Line(0); got != "Frequency       " {
		t.Errorf("Row 0: expected frequency mode, got %q", got)
	}
	if got := lcd.Line(1); got != "                " {
		t.Errorf("Row 1: expected blank, got %q", got)
	}
	if diff := cmp.Diff([]Config{cfg}, rep.identified); diff != "" {
		t.Errorf("Identify mismatch (-want +got):\n%s", diff)
	}
}

func TestMeterStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickFreq = 1000000
	rep := &recordingReporter{}
	m, _, lcd := newSimMeter(cfg, 1000, WithReporter(rep))
	m.Setup()
	ResetSamples()
	defer ResetSamples()

	for i := 0; i < 3; i++ {
		s := m.Step()
		if s.Pulses < 999 || s.Pulses > 1001 {
			t.Errorf("Step %d: expected about 1000 pulses, got %d", i, s.Pulses)
		}
	}

	if line := lcd.Line(1); line != "1000Hz          " && line != "999Hz           " && line != "1001Hz          " {
		t.Errorf("Unexpected reading row %q", line)
	}
	if len(rep.reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(rep.reports))
	}
	for i, r := range rep.reports {
		if r.Seq != uint32(i+1) || r.Mode != uint8(ModeFrequency) {
			t.Errorf("Report %d: unexpected header %+v", i, r)
		}
	}
	if len(RecentSamples()) != 3 {
		t.Errorf("Expected 3 recorded samples, got %d", len(RecentSamples()))
	}
}

func TestMeterScalesShortGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickFreq = 1000000
	cfg.GateMillis = 250
	cfg.SplashMillis = 0
	m, _, lcd := newSimMeter(cfg, 4000)
	m.Setup()

	s := m.Step()
	if s.Pulses < 999 || s.Pulses > 1001 {
		t.Errorf("Expected about 1000 pulses in 250 ms, got %d", s.Pulses)
	}
	hz := s.Frequency(cfg.TickFreq)
	if hz < 3996 || hz > 4004 {
		t.Errorf("Expected scaled frequency near 4000, got %d", hz)
	}
	want := strconv.FormatUint(uint64(hz), 10) + "Hz"
	if line := lcd.Line(1); !strings.HasPrefix(line, want+" ") {
		t.Errorf("Expected reading %q, got %q", want, line)
	}
}

func TestMeterFrameReporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickFreq = 1000000
	cfg.SplashMillis = 0

	var wire bytes.Buffer
	rep := NewFrameReporter(&wire)
	m, _, _ := newSimMeter(cfg, 250, WithReporter(rep))
	m.Setup()
	s := m.Step()

	dec := protocol.NewDecoder(256)
	msgs := dec.Feed(wire.Bytes())
	if len(msgs) != 2 {
		t.Fatalf("Expected identify and report frames, got %d", len(msgs))
	}

	id, err := protocol.ParseMessage(msgs[0])
	if err != nil {
		t.Fatalf("ParseMessage identify: %v", err)
	}
	wantID := &protocol.Identify{Version: protocol.Version, TickFreq: 1000000, GateTicks: 1000000, Columns: 16}
	if diff := cmp.Diff(wantID, id); diff != "" {
		t.Errorf("Identify mismatch (-want +got):\n%s", diff)
	}

	rpt, err := protocol.ParseMessage(msgs[1])
	if err != nil {
		t.Fatalf("ParseMessage report: %v", err)
	}
	wantRpt := &protocol.Report{Seq: 1, Mode: uint8(ModeFrequency), Pulses: s.Pulses, Ticks: s.Ticks, Start: uint32(s.Start)}
	if diff := cmp.Diff(wantRpt, rpt); diff != "" {
		t.Errorf("Report mismatch (-want +got):\n%s", diff)
	}
	if rep.Errors != 0 {
		t.Errorf("Expected no write errors, got %d", rep.Errors)
	}
}

// slowLCD costs clock time on every flush once armed
type slowLCD struct {
	*sim.LCD
	clk  *sim.Clock
	cost uint64
}

func (l *slowLCD) Flush() error {
	l.clk.Advance(l.cost)
	return l.LCD.Flush()
}

type slowReporter struct {
	clk  *sim.Clock
	cost uint64
}

func (r *slowReporter) Identify(Config) {}

func (r *slowReporter) Report(uint32, Mode, Sample) {
	r.clk.Advance(r.cost)
}

func TestMeterKeepsTimebaseAcrossSlowOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickFreq = 1000000
	cfg.SplashMillis = 0

	// 16-bit ticks at 1 MHz wrap every 65536 ticks; display and report
	// together take longer than that.
	const cost = 40000
	clk := sim.NewClock(cfg.TickFreq, 5)
	ticks := sim.NewTickRegister(clk, 16)
	pulses := sim.NewPulseRegister(clk, 1000, 8)
	lcd := &slowLCD{LCD: sim.NewLCD(cfg.Columns, cfg.Rows), clk: clk}
	rep := &slowReporter{clk: clk}
	m := NewMeter(cfg, ticks, pulses, lcd, WithReporter(rep))
	m.Setup()
	lcd.cost, rep.cost = cost, cost

	first := m.Step()
	second := m.Step()

	gap := second.Start - first.Start - uint64(first.Ticks)
	if gap < 2*cost || gap > 2*cost+1000 {
		t.Errorf("Expected about %d ticks between gates, got %d", 2*cost, gap)
	}
	if second.Pulses < 999 || second.Pulses > 1001 {
		t.Errorf("Expected about 1000 pulses, got %d", second.Pulses)
	}
}
