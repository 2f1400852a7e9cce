package core

// Mode is the meter operating mode
type Mode uint8

// Operating modes. Only frequency measurement is implemented; capacitance
// and inductance are reserved and show a placeholder reading.
const (
	ModeIdle        Mode = 0
	ModeFrequency   Mode = 1
	ModeCapacitance Mode = 2
	ModeInductance  Mode = 3
)

// String returns the name shown on the top display row
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Off"
	case ModeFrequency:
		return "Frequency"
	case ModeCapacitance:
		return "Capacitance"
	case ModeInductance:
		return "Inductance"
	default:
		return "Wibble"
	}
}
