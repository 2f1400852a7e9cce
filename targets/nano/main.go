//go:build atmega328p

package main

import (
	"machine"

	"dhmeter/core"
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	cfg := core.DefaultConfig()
	// Reports are sent between gates, nothing needs an interrupt meanwhile
	cfg.MaskInterrupts = true
	if err := cfg.Validate(); err != nil {
		halt()
	}

	// The LCD driver sleeps during initialisation, so it must be set up
	// while the runtime still owns Timer0
	lcd, err := newGPIOLCD(cfg.Columns, cfg.Rows)
	if err != nil {
		halt()
	}

	// T0 is an input; the pull-up holds it high when nothing is connected
	machine.D4.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	m := core.NewMeter(cfg,
		Timer1Counter{},
		Timer0Counter{},
		lcd,
		core.WithReporter(core.NewFrameReporter(machine.Serial)),
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
