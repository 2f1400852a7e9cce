package core

// Tick frequencies of the supported boards
const (
	TickFreqNano   = 16000000  // ATmega328P Timer1, prescaler 1
	TickFreqRP2040 = 125000000 // RP2040 SysTick on the processor clock
)

// MillisToTicks converts milliseconds to ticks of a counter running at freq.
// The per-millisecond factor is truncated first, so clocks that are not a
// multiple of 1 kHz read slightly short.
func MillisToTicks(ms, freq uint32) uint32 {
	return ms * (freq / 1000)
}

// TicksToMicros converts ticks to microseconds
func TicksToMicros(ticks uint64, freq uint32) uint64 {
	if freq == 0 {
		return 0
	}
	return ticks * 1000000 / uint64(freq)
}
