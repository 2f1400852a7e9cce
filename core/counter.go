package core

// Counter is the abstract free-running hardware counter that core code uses.
// Platform-specific implementations handle the actual registers.
type Counter interface {
	// Configure sets the counter free-running with interrupts and
	// waveform generation disabled
	Configure()

	// Read returns the raw register value masked to Width().
	// Down-counting hardware must be presented as up-counting.
	Read() uint32

	// Write sets the raw register value (used to reset to zero)
	Write(v uint32)

	// Width returns the register width in bits (1..32)
	Width() uint8
}

// Mask returns the value mask for a counter of the given width
func Mask(width uint8) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << width) - 1
}

// Delta returns the number of increments from last to cur on a counter of
// the given width. The result is exact as long as the counter wrapped at
// most once between the two reads.
func Delta(last, cur uint32, width uint8) uint32 {
	return (cur - last) & Mask(width)
}
