package core

import "errors"

var (
	ErrTickFreq   = errors.New("tick frequency must be at least 1 kHz")
	ErrGateLength = errors.New("gate length does not fit the tick accumulator")
	ErrDisplay    = errors.New("display must have at least 2 rows and 1 column")
)

// Config holds the board constants the meter is built with
type Config struct {
	TickFreq     uint32 // tick counter frequency in Hz
	GateMillis   uint32 // gate length; 1000 makes the pulse count read in Hz
	SplashMillis uint32 // how long the greeting stays up
	Columns      uint8
	Rows         uint8

	// MaskInterrupts disables interrupts while the gate is open
	MaskInterrupts bool
}

// DefaultConfig returns the Arduino Nano configuration: 16 MHz Timer1,
// one second gate and a 16x2 display
func DefaultConfig() Config {
	return Config{
		TickFreq:     TickFreqNano,
		GateMillis:   1000,
		SplashMillis: 2000,
		Columns:      16,
		Rows:         2,
	}
}

// GateTicks returns the gate length in ticks
func (c Config) GateTicks() uint32 {
	return MillisToTicks(c.GateMillis, c.TickFreq)
}

// Validate checks that the configuration can be measured with
func (c Config) Validate() error {
	if c.TickFreq < 1000 {
		return ErrTickFreq
	}
	if c.GateMillis == 0 || uint64(c.GateMillis)*uint64(c.TickFreq/1000) > 0x7FFFFFFF {
		return ErrGateLength
	}
	if c.Rows < 2 || c.Columns == 0 {
		return ErrDisplay
	}
	return nil
}
