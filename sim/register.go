package sim

// Register is a free-running counter that increments Rate times per second
// of simulated time and silently wraps at its width.
type Register struct {
	clk   *Clock
	rate  uint64
	width uint8

	running bool
	base    uint64 // events at the last write
	value   uint32 // value written at the last write

	// Reads counts register reads
	Reads uint64
}

// NewTickRegister creates a counter clocked directly by clk
func NewTickRegister(clk *Clock, width uint8) *Register {
	return NewPulseRegister(clk, uint64(clk.Freq), width)
}

// NewPulseRegister creates a counter fed by a square wave of rate Hz
func NewPulseRegister(clk *Clock, rate uint64, width uint8) *Register {
	return &Register{clk: clk, rate: rate, width: width}
}

// SetRate changes the input frequency from now on
func (r *Register) SetRate(rate uint64) {
	if r.running {
		r.value = r.current()
	}
	r.rate = rate
	r.rebase()
}

// Configure starts the counter
func (r *Register) Configure() {
	if !r.running {
		r.running = true
		r.rebase()
	}
}

// Read returns the current value and charges the clock for the access
func (r *Register) Read() uint32 {
	v := r.current()
	r.Reads++
	r.clk.Advance(r.clk.ReadCost)
	return v
}

// Write sets the counter value
func (r *Register) Write(v uint32) {
	r.value = v & r.mask()
	r.rebase()
}

// Width returns the register width in bits
func (r *Register) Width() uint8 {
	return r.width
}

// Events returns the total input edges since simulation start
func (r *Register) Events() uint64 {
	return r.events(r.clk.Now())
}

func (r *Register) current() uint32 {
	if !r.running {
		return r.value
	}
	n := r.events(r.clk.Now()) - r.base
	return (r.value + uint32(n)) & r.mask()
}

func (r *Register) rebase() {
	r.base = r.events(r.clk.Now())
}

func (r *Register) events(t uint64) uint64 {
	if r.clk.Freq == 0 {
		return 0
	}
	return t * r.rate / uint64(r.clk.Freq)
}

func (r *Register) mask() uint32 {
	if r.width >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << r.width) - 1
}
