package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

const (
	SampleRingSize = 8 // keep the last 8 gates for post-mortem
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	sampleRing     [SampleRingSize]Sample
	sampleRingHead uint8
	sampleRingLen  uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordSample stores a gate result in the ring buffer
func RecordSample(s Sample) {
	sampleRing[sampleRingHead] = s
	sampleRingHead = (sampleRingHead + 1) % SampleRingSize
	if sampleRingLen < SampleRingSize {
		sampleRingLen++
	}
}

// RecentSamples returns the recorded samples, oldest first
func RecentSamples() []Sample {
	out := make([]Sample, 0, sampleRingLen)
	start := (sampleRingHead + SampleRingSize - sampleRingLen) % SampleRingSize
	for i := uint8(0); i < sampleRingLen; i++ {
		out = append(out, sampleRing[(start+i)%SampleRingSize])
	}
	return out
}

// ResetSamples clears the ring buffer
func ResetSamples() {
	sampleRingHead = 0
	sampleRingLen = 0
}

// DumpSamples writes the ring buffer through the debug writer
func DumpSamples() {
	if debugPrintln == nil {
		return
	}
	var buf []byte
	for _, s := range RecentSamples() {
		buf = append(buf[:0], "gate start="...)
		buf = appendUint(buf, s.Start)
		buf = append(buf, " pulses="...)
		buf = appendUint(buf, uint64(s.Pulses))
		buf = append(buf, " ticks="...)
		buf = appendUint(buf, uint64(s.Ticks))
		buf = append(buf, " polls="...)
		buf = appendUint(buf, uint64(s.Polls))
		debugPrintln(string(buf))
	}
}
