package core

import (
	"io"

	"dhmeter/protocol"
)

// Reporter receives every measurement the meter makes
type Reporter interface {
	// Identify is called once after Setup
	Identify(cfg Config)

	// Report is called after each gate
	Report(seq uint32, mode Mode, s Sample)
}

// FrameReporter streams identify and report frames to a serial port
type FrameReporter struct {
	enc *protocol.Encoder

	// Errors counts failed writes; the meter keeps measuring regardless
	Errors uint32
}

// NewFrameReporter creates a reporter writing frames to w
func NewFrameReporter(w io.Writer) *FrameReporter {
	return &FrameReporter{enc: protocol.NewEncoder(w)}
}

func (r *FrameReporter) Identify(cfg Config) {
	m := protocol.Identify{
		Version:   protocol.Version,
		TickFreq:  cfg.TickFreq,
		GateTicks: cfg.GateTicks(),
		Columns:   cfg.Columns,
	}
	r.send(protocol.MsgIdentify, m.Encode)
}

func (r *FrameReporter) Report(seq uint32, mode Mode, s Sample) {
	m := protocol.Report{
		Seq:    seq,
		Mode:   uint8(mode),
		Pulses: s.Pulses,
		Ticks:  s.Ticks,
		Start:  uint32(s.Start),
	}
	r.send(protocol.MsgReport, m.Encode)
}

func (r *FrameReporter) send(id uint32, args func(protocol.OutputBuffer)) {
	if err := r.enc.Send(id, args); err != nil {
		r.Errors++
		DebugPrintln("report: " + err.Error())
	}
}
