// Package sim provides simulated meter hardware: a CPU clock that only
// advances when a register is touched, free-running counters of any width
// driven by that clock, and a character LCD that renders to text.
package sim

// Clock is a simulated CPU clock. Time moves forward only through Advance
// and through register reads, each of which costs ReadCost ticks.
type Clock struct {
	Freq     uint32 // ticks per second
	ReadCost uint64 // ticks consumed by one register read

	now uint64
}

// NewClock creates a clock at freq Hz whose register reads cost readCost ticks
func NewClock(freq uint32, readCost uint64) *Clock {
	return &Clock{Freq: freq, ReadCost: readCost}
}

// Now returns the ticks since the clock was created
func (c *Clock) Now() uint64 {
	return c.now
}

// Advance moves the clock forward
func (c *Clock) Advance(ticks uint64) {
	c.now += ticks
}
