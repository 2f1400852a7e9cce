package pio

import "testing"

// fakeSM interprets the handful of instructions the edge counter uses,
// with the RX FIFO depth and wrap behaviour of an RP2040 state machine.
type fakeSM struct {
	program    []uint16
	pc         uint8
	wrapTarget uint8
	wrap       uint8
	x, isr     uint32
	pin        bool
	rx         []uint32
	dropped    int
}

const rxDepth = 4

func newFakeSM(pin, offset uint8) *fakeSM {
	sm := &fakeSM{program: make([]uint16, 32), pc: offset}
	copy(sm.program[offset:], EdgeCounterProgram(pin, offset))
	sm.wrapTarget, sm.wrap = EdgeCounterWrap(offset)
	return sm
}

// exec runs one instruction and reports whether it stalled and whether it
// changed the program counter itself.
func (sm *fakeSM) exec(instr uint16) (stalled, jumped bool) {
	switch instr >> 13 {
	case 0: // jmp
		if (instr>>5)&7 != 2 {
			panic("unsupported jmp condition")
		}
		taken := sm.x != 0
		sm.x--
		if taken {
			sm.pc = uint8(instr & 0x1f)
			return false, true
		}
	case 1: // wait gpio
		if sm.pin != (instr&0x80 != 0) {
			return true, false
		}
	case 4: // push noblock
		if len(sm.rx) < rxDepth {
			sm.rx = append(sm.rx, sm.isr)
		} else {
			sm.dropped++
		}
		sm.isr = 0
	case 5:
		switch instr {
		case InstrMovXNotNull:
			sm.x = ^uint32(0)
		case InstrMovISRNotX:
			sm.isr = ^sm.x
		default:
			panic("unsupported mov")
		}
	default:
		panic("unsupported instruction")
	}
	return false, false
}

// run clocks the state machine until it stalls
func (sm *fakeSM) run() {
	for i := 0; i < 64; i++ {
		stalled, jumped := sm.exec(sm.program[sm.pc])
		if stalled {
			return
		}
		if jumped {
			continue
		}
		if sm.pc == sm.wrap {
			sm.pc = sm.wrapTarget
		} else {
			sm.pc++
		}
	}
	panic("state machine never stalled")
}

func (sm *fakeSM) edges(n int) {
	for i := 0; i < n; i++ {
		sm.pin = false
		sm.run()
		sm.pin = true
		sm.run()
	}
}

func (sm *fakeSM) IsRxFIFOEmpty() bool { return len(sm.rx) == 0 }

func (sm *fakeSM) RxGet() uint32 {
	v := sm.rx[0]
	sm.rx = sm.rx[1:]
	return v
}

func (sm *fakeSM) Exec(instr uint16) {
	sm.exec(instr)
}

func TestEdgeCounterWrapOrder(t *testing.T) {
	for _, offset := range []uint8{0, 7} {
		bottom, top := EdgeCounterWrap(offset)
		if bottom >= top {
			t.Errorf("offset %d: wrap target %d must sit below wrap %d", offset, bottom, top)
		}
		if want := offset + uint8(len(EdgeCounterProgram(0, offset))) - 1; top != want {
			t.Errorf("offset %d: expected wrap at last instruction %d, got %d", offset, want, top)
		}
	}
}

func TestEdgeCounterCountsEdges(t *testing.T) {
	for _, offset := range []uint8{0, 12} {
		sm := newFakeSM(5, offset)
		sm.run()
		c := NewEdgeCounter(sm)

		var want uint32
		for _, n := range []int{0, 1, 3, 100} {
			sm.edges(n)
			want += uint32(n)
			if got := c.Read(); got != want {
				t.Errorf("offset %d: expected %d edges, got %d", offset, want, got)
			}
		}
	}
}

func TestEdgeCounterReadIsCurrentAfterLongIdle(t *testing.T) {
	sm := newFakeSM(2, 0)
	sm.run()
	c := NewEdgeCounter(sm)
	c.Write(0)

	sm.edges(10)
	if got := c.Read(); got != 10 {
		t.Fatalf("Expected 10, got %d", got)
	}

	// Far more edges than the RX FIFO holds go by between two reads.
	sm.edges(5000)
	if got := c.Read(); got != 5010 {
		t.Errorf("Expected 5010, got %d", got)
	}
	sm.edges(1)
	if got := c.Read(); got != 5011 {
		t.Errorf("Expected 5011, got %d", got)
	}
}

func TestEdgeCounterDiscardsStaleFIFO(t *testing.T) {
	sm := newFakeSM(2, 0)
	sm.run()
	c := NewEdgeCounter(sm)

	sm.edges(7)
	sm.rx = append(sm.rx, 1, 2, 3)
	if got := c.Read(); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if !sm.IsRxFIFOEmpty() {
		t.Errorf("Expected the FIFO to be drained, %d left", len(sm.rx))
	}
}

func TestEdgeCounterWrite(t *testing.T) {
	sm := newFakeSM(2, 0)
	sm.run()
	c := NewEdgeCounter(sm)

	sm.edges(40)
	c.Write(1000)
	if got := c.Read(); got != 1000 {
		t.Errorf("Expected 1000 after Write, got %d", got)
	}
	sm.edges(5)
	if got := c.Read(); got != 1005 {
		t.Errorf("Expected 1005, got %d", got)
	}
	if c.Width() != 32 {
		t.Errorf("Expected width 32, got %d", c.Width())
	}
}

func TestEdgeCounterWraps32Bits(t *testing.T) {
	sm := newFakeSM(2, 0)
	sm.run()
	sm.x = 3 // three edges short of ~X wrapping to zero
	c := NewEdgeCounter(sm)
	c.Write(0)

	sm.edges(6)
	if got := c.Read(); got != 6 {
		t.Errorf("Expected 6 across the wrap, got %d", got)
	}
}
