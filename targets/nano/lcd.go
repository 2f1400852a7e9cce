//go:build atmega328p

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"

	"dhmeter/core"
)

// Display wiring, 8-bit parallel bus with R/W so the driver can poll the
// busy flag instead of sleeping
var (
	lcdRS   = machine.D2
	lcdRW   = machine.D3
	lcdE    = machine.D5
	lcdData = []machine.Pin{
		machine.D6, machine.D7, machine.D8, machine.D9,
		machine.D10, machine.D11, machine.D12, machine.D13,
	}
)

// newGPIOLCD configures the parallel HD44780. The driver keeps a single
// pending buffer, so Panel output goes through core.WriteThrough.
func newGPIOLCD(columns, rows uint8) (*core.WriteThrough, error) {
	dev, err := hd44780.NewGPIO8Bit(lcdData, lcdE, lcdRS, lcdRW)
	if err != nil {
		return nil, err
	}
	err = dev.Configure(hd44780.Config{
		Width:  int16(columns),
		Height: int16(rows),
	})
	if err != nil {
		return nil, err
	}
	return core.NewWriteThrough(&dev), nil
}
