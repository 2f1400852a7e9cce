//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"dhmeter/core"
	"dhmeter/targets/pio"
)

const edgeCounterOrigin = 0 // jump targets are absolute

// PIOCounter counts edges on a GPIO with a PIO state machine. The CPU sees
// a 32-bit free-running count; Write is emulated with an offset.
type PIOCounter struct {
	*pio.EdgeCounter
	block *rp2pio.PIO
	sm    rp2pio.StateMachine
	pin   machine.Pin
}

var _ core.Counter = (*PIOCounter)(nil)

// NewPIOCounter creates a counter on state machine smNum of PIO0
func NewPIOCounter(pin machine.Pin, smNum uint8) *PIOCounter {
	sm := rp2pio.PIO0.StateMachine(smNum)
	return &PIOCounter{
		EdgeCounter: pio.NewEdgeCounter(sm),
		block:       rp2pio.PIO0,
		sm:          sm,
		pin:         pin,
	}
}

func (c *PIOCounter) Configure() {
	c.sm.TryClaim()

	program := pio.EdgeCounterProgram(uint8(c.pin), edgeCounterOrigin)
	offset, err := c.block.AddProgram(program, edgeCounterOrigin)
	if err != nil {
		core.DebugPrintln("pio: " + err.Error())
		return
	}

	c.pin.Configure(machine.PinConfig{Mode: machine.PinInput})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetWrap(pio.EdgeCounterWrap(offset))
	cfg.SetClkDivIntFrac(1, 0)

	c.sm.Init(offset, cfg)
	c.sm.SetEnabled(true)
}
