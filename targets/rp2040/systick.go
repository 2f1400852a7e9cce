//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"dhmeter/core"
)

// Cortex-M0+ SysTick, clocked from the processor clock
const (
	systickBase = 0xE000E010
	systickCSR  = systickBase + 0x00 // control and status
	systickRVR  = systickBase + 0x04 // reload value
	systickCVR  = systickBase + 0x08 // current value

	systickEnable    = 1 << 0
	systickClkSource = 1 << 2

	systickMax = 0xFFFFFF
)

var (
	sysCSR = (*volatile.Register32)(unsafe.Pointer(uintptr(systickCSR)))
	sysRVR = (*volatile.Register32)(unsafe.Pointer(uintptr(systickRVR)))
	sysCVR = (*volatile.Register32)(unsafe.Pointer(uintptr(systickCVR)))
)

// SysTickCounter presents the 24-bit SysTick down counter as a free-running
// up counter at the processor clock. The tick interrupt stays disabled.
type SysTickCounter struct{}

var _ core.Counter = SysTickCounter{}

func (SysTickCounter) Configure() {
	sysCSR.Set(0)
	sysRVR.Set(systickMax)
	sysCVR.Set(0)
	sysCSR.Set(systickClkSource | systickEnable)
}

func (SysTickCounter) Read() uint32 {
	return systickMax - sysCVR.Get()
}

// Write clears the counter; the hardware cannot be loaded with a value
func (SysTickCounter) Write(uint32) {
	sysCVR.Set(0)
}

func (SysTickCounter) Width() uint8 {
	return 24
}
