package core

// Greeting shown while the meter starts
var Greeting = [2]string{"dhMeter", "(c) dh   GPLv3"}

// Meter ties the timebase, gate, display and reporter together and runs
// the measurement loop
type Meter struct {
	cfg      Config
	tb       *Timebase
	gate     *Gate
	pulses   Counter
	panel    *Panel
	reporter Reporter
	seq      uint32
}

// Option configures a Meter
type Option func(*Meter)

// WithReporter sends every measurement to r
func WithReporter(r Reporter) Option {
	return func(m *Meter) {
		m.reporter = r
	}
}

// NewMeter wires a meter from its hardware collaborators
func NewMeter(cfg Config, ticks, pulses Counter, lcd CharDisplay, opts ...Option) *Meter {
	tb := NewTimebase(ticks, cfg.TickFreq)
	m := &Meter{
		cfg:    cfg,
		tb:     tb,
		gate:   NewGate(tb, pulses, cfg.GateTicks()),
		pulses: pulses,
		panel:  NewPanel(lcd, cfg.Columns, cfg.Rows),
	}
	m.gate.SetInterruptsMasked(cfg.MaskInterrupts)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Timebase returns the meter's timebase
func (m *Meter) Timebase() *Timebase {
	return m.tb
}

// Panel returns the meter's display panel
func (m *Meter) Panel() *Panel {
	return m.panel
}

// Setup starts the timebase, shows the greeting, starts the pulse counter
// and enters frequency mode
func (m *Meter) Setup() {
	m.tb.Init()

	if err := m.panel.Splash(Greeting[:]...); err != nil {
		DebugPrintln("display: " + err.Error())
	}

	m.pulses.Configure()
	m.pulses.Write(0)

	m.tb.DelayMillis(m.cfg.SplashMillis)

	m.SetMode(ModeFrequency)

	if m.reporter != nil {
		m.reporter.Identify(m.cfg)
	}
}

// SetMode switches the operating mode shown on the display
func (m *Meter) SetMode(mode Mode) {
	if err := m.panel.SetMode(mode); err != nil {
		DebugPrintln("display: " + err.Error())
	}
}

// Step runs one gate and publishes the result
func (m *Meter) Step() Sample {
	s := m.gate.Sample()
	m.seq++

	hz := s.Pulses
	if m.cfg.GateMillis != 1000 {
		hz = s.Frequency(m.cfg.TickFreq)
	}
	if err := m.panel.Show(hz); err != nil {
		DebugPrintln("display: " + err.Error())
	}
	// The tick counter must be polled at least once per wrap; the display
	// and the report can each take a good part of one on the Nano.
	m.tb.ElapsedTicks()

	RecordSample(s)
	if m.reporter != nil {
		m.reporter.Report(m.seq, m.panel.Mode(), s)
	}
	return s
}

// Run measures forever
func (m *Meter) Run() {
	for {
		m.Step()
	}
}
