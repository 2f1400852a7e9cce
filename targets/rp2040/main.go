//go:build rp2040

package main

import (
	"machine"

	"dhmeter/core"
)

// Signal input, GP15 on the Pico header
const inputPin = machine.GP15

func main() {
	// Disable the watchdog left running by a previous image
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	initUSB()

	cfg := core.DefaultConfig()
	cfg.TickFreq = core.TickFreqRP2040
	if err := cfg.Validate(); err != nil {
		halt()
	}

	lcd, err := newI2CLCD(machine.I2C0, cfg.Columns, cfg.Rows)
	if err != nil {
		halt()
	}

	usb := &usbWriter{}
	// Debug text goes to UART0 so the USB stream carries frames only
	machine.UART0.Configure(machine.UARTConfig{BaudRate: 115200})
	core.SetDebugWriter(func(msg string) {
		machine.UART0.Write([]byte(msg + "\r\n"))
	})

	m := core.NewMeter(cfg,
		SysTickCounter{},
		NewPIOCounter(inputPin, 0),
		lcd,
		core.WithReporter(core.NewFrameReporter(usb)),
	)
	m.Setup()
	m.Run()
}

// halt stops with the on-board LED lit
func halt() {
	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.LED.High()
	for {
	}
}
