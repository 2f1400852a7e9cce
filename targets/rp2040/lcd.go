//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"

	"dhmeter/core"
)

// I2C backpack addresses to try, PCF8574 then PCF8574A
var lcdAddresses = []uint8{0x27, 0x3F}

// i2cLCD adapts an HD44780 behind an I2C backpack to core.CharDisplay.
// The driver writes through immediately, so Flush has nothing to do.
type i2cLCD struct {
	dev hd44780i2c.Device
}

var _ core.CharDisplay = (*i2cLCD)(nil)

func newI2CLCD(bus *machine.I2C, columns, rows uint8) (*i2cLCD, error) {
	err := bus.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		return nil, err
	}

	var addr uint8 = lcdAddresses[0]
	for _, a := range lcdAddresses {
		// An empty read is enough to see whether a backpack answers
		if bus.Tx(uint16(a), nil, []byte{0}) == nil {
			addr = a
			break
		}
	}

	dev := hd44780i2c.New(bus, addr)
	err = dev.Configure(hd44780i2c.Config{
		Width:  columns,
		Height: rows,
	})
	if err != nil {
		return nil, err
	}
	dev.ClearDisplay()
	return &i2cLCD{dev: dev}, nil
}

func (l *i2cLCD) SetCursor(col, row uint8) {
	l.dev.SetCursor(col, row)
}

func (l *i2cLCD) Print(b []byte) int {
	l.dev.Print(b)
	return len(b)
}

func (l *i2cLCD) Flush() error {
	return nil
}
