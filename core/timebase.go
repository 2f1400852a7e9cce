package core

// Timebase extends a narrow free-running tick counter into a 64-bit
// elapsed tick count without an overflow interrupt. ElapsedTicks must be
// called (directly or via Delay/Gate) at least once per counter wrap period.
type Timebase struct {
	counter Counter
	freq    uint32
	width   uint8

	elapsed uint64 // ticks accumulated since Init
	last    uint32 // raw counter value at the last poll
	running bool
}

// NewTimebase creates a timebase on ticks, which runs at freq Hz
func NewTimebase(ticks Counter, freq uint32) *Timebase {
	return &Timebase{
		counter: ticks,
		freq:    freq,
		width:   ticks.Width(),
	}
}

// Init configures the tick counter and restarts the accounting from zero
func (tb *Timebase) Init() {
	tb.counter.Configure()
	tb.counter.Write(0)
	tb.last = tb.counter.Read()
	tb.elapsed = 0
	tb.running = true
}

// ElapsedTicks polls the counter and returns the ticks since Init
func (tb *Timebase) ElapsedTicks() uint64 {
	if !tb.running {
		return 0
	}
	cur := tb.counter.Read()
	tb.elapsed += uint64(Delta(tb.last, cur, tb.width))
	tb.last = cur
	return tb.elapsed
}

// Elapsed returns the accumulated ticks as of the last poll
func (tb *Timebase) Elapsed() uint64 {
	return tb.elapsed
}

// Last returns the raw counter value seen by the last poll
func (tb *Timebase) Last() uint32 {
	return tb.last
}

// Freq returns the tick frequency in Hz
func (tb *Timebase) Freq() uint32 {
	return tb.freq
}

// Counter returns the underlying tick counter. Code that polls it directly
// must hand the consumed ticks back with Reconcile.
func (tb *Timebase) Counter() Counter {
	return tb.counter
}

// Reconcile adds ticks consumed outside ElapsedTicks and records the raw
// counter value they were measured up to.
func (tb *Timebase) Reconcile(consumed uint64, last uint32) {
	tb.elapsed += consumed
	tb.last = last & Mask(tb.width)
}

// MillisToTicks converts milliseconds to ticks of this timebase
func (tb *Timebase) MillisToTicks(ms uint32) uint32 {
	return MillisToTicks(ms, tb.freq)
}

// Delay busy-waits until at least ticks have elapsed.
// It returns immediately on a timebase that was never initialized.
func (tb *Timebase) Delay(ticks uint64) {
	if !tb.running {
		return
	}
	start := tb.ElapsedTicks()
	for tb.ElapsedTicks()-start < ticks {
	}
}

// DelayMillis busy-waits for ms milliseconds
func (tb *Timebase) DelayMillis(ms uint32) {
	tb.Delay(uint64(tb.MillisToTicks(ms)))
}
