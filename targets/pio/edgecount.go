// Package pio holds the PIO edge counter program and the snapshot logic
// that reads it back from a running state machine.
package pio

// PIO instruction words used by the edge counter
const (
	InstrMovXNotNull    = 0xA02B // mov x, ~null
	InstrMovISRNotX     = 0xA0C9 // mov isr, ~x
	InstrPushNoBlock    = 0x8000 // push noblock
	instrWaitGPIOLow    = 0x2000 // wait 0 gpio <pin>
	instrWaitGPIOHigh   = 0x2080 // wait 1 gpio <pin>
	instrJmpXNotZeroDec = 0x0040 // jmp x--, <addr>
)

// EdgeCounterProgram counts rising edges on pin by decrementing X from all
// ones, so ~X is the number of edges seen. The program never pushes; the
// CPU takes snapshots with Exec. origin is the load address, since jump
// targets are absolute.
func EdgeCounterProgram(pin, origin uint8) []uint16 {
	return []uint16{
		InstrMovXNotNull, // 0
		// .wrap_target
		instrWaitGPIOLow | uint16(pin&0x1f),           // 1
		instrWaitGPIOHigh | uint16(pin&0x1f),          // 2
		instrJmpXNotZeroDec | uint16((origin+1)&0x1f), // 3
		// .wrap
	}
}

// EdgeCounterWrap returns the wrap target (bottom) and wrap (top) of the
// program loaded at offset, in the order StateMachineConfig.SetWrap takes.
func EdgeCounterWrap(offset uint8) (wrapTarget, wrap uint8) {
	return offset + 1, offset + 3
}

// StateMachine is the part of a PIO state machine the counter drives
type StateMachine interface {
	IsRxFIFOEmpty() bool
	RxGet() uint32
	Exec(instr uint16)
}

// EdgeCounter reads a running edge counter program. Each Read forces a
// fresh snapshot of X, so the value is current when Read returns no matter
// how long the caller left the state machine alone. Loading and starting
// the program is left to the board.
type EdgeCounter struct {
	sm     StateMachine
	offset uint32
}

func NewEdgeCounter(sm StateMachine) *EdgeCounter {
	return &EdgeCounter{sm: sm}
}

func (c *EdgeCounter) snapshot() uint32 {
	for !c.sm.IsRxFIFOEmpty() {
		c.sm.RxGet()
	}
	c.sm.Exec(InstrMovISRNotX)
	c.sm.Exec(InstrPushNoBlock)
	for c.sm.IsRxFIFOEmpty() {
	}
	return c.sm.RxGet()
}

func (c *EdgeCounter) Read() uint32 {
	return c.snapshot() - c.offset
}

func (c *EdgeCounter) Write(v uint32) {
	c.offset = c.snapshot() - v
}

func (c *EdgeCounter) Width() uint8 {
	return 32
}
