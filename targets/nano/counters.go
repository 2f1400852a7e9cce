//go:build atmega328p

package main

import (
	"runtime/volatile"
	"unsafe"

	"dhmeter/core"
)

// ATmega328P timer registers (data space addresses)
const (
	regGTCCR  = 0x43
	regTCCR0A = 0x44
	regTCCR0B = 0x45
	regTCNT0  = 0x46
	regTIMSK0 = 0x6E
	regTCCR1A = 0x80
	regTCCR1B = 0x81
	regTCCR1C = 0x82
	regTCNT1L = 0x84
	regTCNT1H = 0x85
	regTIMSK1 = 0x6F

	// TCCR0B clock select: external clock on T0, rising edge
	cs0ExternalRising = 0x07
	// TCCR1B clock select: CPU clock, no prescaler
	cs1NoPrescale = 0x01
)

func reg8(addr uintptr) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(addr))
}

var (
	gtccr  = reg8(regGTCCR)
	tccr0a = reg8(regTCCR0A)
	tccr0b = reg8(regTCCR0B)
	tcnt0  = reg8(regTCNT0)
	timsk0 = reg8(regTIMSK0)
	tccr1a = reg8(regTCCR1A)
	tccr1b = reg8(regTCCR1B)
	tccr1c = reg8(regTCCR1C)
	tcnt1l = reg8(regTCNT1L)
	tcnt1h = reg8(regTCNT1H)
	timsk1 = reg8(regTIMSK1)
)

// Timer1Counter is the 16-bit timebase, counting CPU cycles
type Timer1Counter struct{}

var _ core.Counter = Timer1Counter{}

func (Timer1Counter) Configure() {
	gtccr.Set(0)
	timsk1.Set(0) // no interrupts
	tccr1a.Set(0) // normal mode, no outputs
	tccr1c.Set(0)
	tccr1b.Set(cs1NoPrescale)
}

// Read reads TCNT1. The low byte must be read first; it latches the high
// byte into the temporary register.
func (Timer1Counter) Read() uint32 {
	lo := tcnt1l.Get()
	hi := tcnt1h.Get()
	return uint32(hi)<<8 | uint32(lo)
}

// Write writes TCNT1, high byte first
func (Timer1Counter) Write(v uint32) {
	tcnt1h.Set(uint8(v >> 8))
	tcnt1l.Set(uint8(v))
}

func (Timer1Counter) Width() uint8 {
	return 16
}

// Timer0Counter counts rising edges on the T0 pin (D4). The TinyGo
// runtime loses Timer0 once this is configured.
type Timer0Counter struct{}

var _ core.Counter = Timer0Counter{}

func (Timer0Counter) Configure() {
	timsk0.Set(0) // no interrupts
	tccr0a.Set(0) // normal mode, no outputs
	tccr0b.Set(cs0ExternalRising)
}

func (Timer0Counter) Read() uint32 {
	return uint32(tcnt0.Get())
}

func (Timer0Counter) Write(v uint32) {
	tcnt0.Set(uint8(v))
}

func (Timer0Counter) Width() uint8 {
	return 8
}
