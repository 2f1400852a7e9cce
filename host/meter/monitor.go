// Package meter follows the frame stream of a running meter
package meter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"dhmeter/core"
	"dhmeter/protocol"
)

// Reading is one decoded gate result
type Reading struct {
	Time       time.Time
	Seq        uint32
	Mode       core.Mode
	Pulses     uint32
	Ticks      uint32
	Hz         uint32 // pulses scaled by the actual gate length
	GateMillis uint32
	Derived    float64
	Missed     uint32 // reports lost since the previous reading
}

// Monitor decodes frames from a meter and turns reports into readings
type Monitor struct {
	port    io.Reader
	dec     *protocol.Decoder
	deriver *Deriver
	log     zerolog.Logger
	now     func() time.Time

	tickFreq uint32
	info     *protocol.Identify
	lastSeq  uint32
	haveSeq  bool

	// Missed counts reports lost to corruption or overruns
	Missed uint32
}

// NewMonitor creates a monitor reading from port. deriver may be nil.
func NewMonitor(port io.Reader, deriver *Deriver, log zerolog.Logger) *Monitor {
	return &Monitor{
		port:     port,
		dec:      protocol.NewDecoder(protocol.MessageMax * 4),
		deriver:  deriver,
		log:      log,
		now:      time.Now,
		tickFreq: core.TickFreqNano,
	}
}

// SetTickFreq sets the timebase frequency assumed until an identify arrives
func (m *Monitor) SetTickFreq(freq uint32) {
	m.tickFreq = freq
}

// Info returns the last identify received, or nil
func (m *Monitor) Info() *protocol.Identify {
	return m.info
}

// Dropped returns the number of corrupt frames discarded
func (m *Monitor) Dropped() uint32 {
	return m.dec.Dropped
}

// Run reads until the port reports end of file, an error occurs or ctx is
// cancelled, calling fn for every report.
func (m *Monitor) Run(ctx context.Context, fn func(Reading)) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.port.Read(buf)
		if n > 0 {
			for _, msg := range m.dec.Feed(buf[:n]) {
				m.handle(msg, fn)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}
}

func (m *Monitor) handle(msg *protocol.Message, fn func(Reading)) {
	parsed, err := protocol.ParseMessage(msg)
	if err != nil {
		m.log.Warn().Err(err).Uint8("seq", msg.Sequence).Msg("bad message")
		return
	}

	switch p := parsed.(type) {
	case *protocol.Identify:
		m.info = p
		m.tickFreq = p.TickFreq
		m.haveSeq = false
		m.log.Info().
			Str("version", p.Version).
			Uint32("tick_freq", p.TickFreq).
			Uint32("gate_ticks", p.GateTicks).
			Msg("meter identified")
	case *protocol.Report:
		fn(m.reading(p))
	}
}

func (m *Monitor) reading(p *protocol.Report) Reading {
	r := Reading{
		Time:   m.now(),
		Seq:    p.Seq,
		Mode:   core.Mode(p.Mode),
		Pulses: p.Pulses,
		Ticks:  p.Ticks,
	}

	if m.haveSeq {
		switch {
		case p.Seq > m.lastSeq+1:
			r.Missed = p.Seq - m.lastSeq - 1
			m.Missed += r.Missed
			m.log.Warn().Uint32("missed", r.Missed).Uint32("seq", p.Seq).Msg("reports lost")
		case p.Seq <= m.lastSeq:
			m.log.Info().Uint32("seq", p.Seq).Msg("meter restarted")
		}
	}
	m.lastSeq = p.Seq
	m.haveSeq = true

	s := core.Sample{Pulses: p.Pulses, Ticks: p.Ticks}
	r.Hz = s.Frequency(m.tickFreq)
	r.GateMillis = s.Millis(m.tickFreq)

	if m.deriver != nil {
		v, err := m.deriver.Eval(r.Hz, r.Pulses, r.GateMillis)
		if err != nil {
			m.log.Debug().Err(err).Msg("derive")
		}
		r.Derived = v
	} else {
		r.Derived = float64(r.Hz)
	}
	return r
}
