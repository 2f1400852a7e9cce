package core

// Sample is the result of one gate. Start stays exact as long as the caller
// polls the timebase at least once per tick counter wrap between gates;
// Meter.Step does.
type Sample struct {
	Start  uint64 // timebase ticks at gate open
	Pulses uint32 // pulses counted while the gate was open
	Ticks  uint32 // actual gate length in ticks (>= the requested gate)
	Polls  uint32 // loop iterations, a measure of polling overhead
}

// Frequency returns the pulse rate in Hz scaled by the actual gate length.
// For a one second gate this equals Pulses up to the final poll overshoot.
func (s Sample) Frequency(freq uint32) uint32 {
	if s.Ticks == 0 {
		return 0
	}
	return uint32(uint64(s.Pulses) * uint64(freq) / uint64(s.Ticks))
}

// Millis returns the actual gate length in milliseconds
func (s Sample) Millis(freq uint32) uint32 {
	return uint32(TicksToMicros(uint64(s.Ticks), freq) / 1000)
}

// Gate counts pulses over a fixed number of timebase ticks by polling two
// free-running counters. Both counters must wrap at most once per poll.
type Gate struct {
	tb         *Timebase
	pulses     Counter
	pulseWidth uint8
	tickWidth  uint8
	gateTicks  uint32
	masked     bool
}

// NewGate creates a gate of gateTicks timebase ticks over the pulse counter
func NewGate(tb *Timebase, pulses Counter, gateTicks uint32) *Gate {
	return &Gate{
		tb:         tb,
		pulses:     pulses,
		pulseWidth: pulses.Width(),
		tickWidth:  tb.Counter().Width(),
		gateTicks:  gateTicks,
	}
}

// GateTicks returns the requested gate length
func (g *Gate) GateTicks() uint32 {
	return g.gateTicks
}

// SetInterruptsMasked makes every gate run with interrupts disabled. Only
// boards whose runtime needs no interrupts for a full gate should use it.
func (g *Gate) SetInterruptsMasked(masked bool) {
	g.masked = masked
}

// Measure runs one gate and returns the pulse count, which is the
// frequency in Hz when the gate is one second long.
func (g *Gate) Measure() uint32 {
	return g.Sample().Pulses
}

// Sample runs one gate and returns the full result. It blocks for the gate
// length and cannot be interrupted.
func (g *Gate) Sample() Sample {
	ticks := g.tb.Counter()

	if g.masked {
		state := disableInterrupts()
		defer restoreInterrupts(state)
	}

	// Pulse counter first, then the tick counter, as on every iteration.
	// Polling the timebase here folds any ticks since its last poll into
	// its own accounting so the gate starts from its last observed value.
	lastPulse := g.pulses.Read()
	start := g.tb.ElapsedTicks()
	lastTick := g.tb.Last()

	var s Sample
	s.Start = start
	for s.Ticks < g.gateTicks {
		p := g.pulses.Read()
		t := ticks.Read()
		s.Pulses += Delta(lastPulse, p, g.pulseWidth)
		lastPulse = p
		s.Ticks += Delta(lastTick, t, g.tickWidth)
		lastTick = t
		s.Polls++
	}

	g.tb.Reconcile(uint64(s.Ticks), lastTick)
	return s
}
