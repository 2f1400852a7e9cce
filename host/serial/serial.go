// Package serial opens the link to a meter's UART or USB CDC port
package serial

import (
	"errors"
	"io"
	"strconv"
	"time"
)

var (
	ErrNilConfig = errors.New("serial config cannot be nil")
	ErrNoDevice  = errors.New("serial device is empty")
)

// Port is a byte stream to the meter: a tarm/serial port on the host or
// an in-memory pipe in tests
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes not yet read or sent
	Flush() error
}

// Config describes how to open a port
type Config struct {
	Device string // e.g. "/dev/ttyUSB0", "COM3"

	// Baud is the Nano UART rate; USB CDC ignores it
	Baud int

	// ReadTimeout bounds each Read in milliseconds, 0 blocks
	ReadTimeout int
}

// DefaultConfig returns the settings matching the firmware UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// Timeout returns ReadTimeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Millisecond
}

func (c *Config) String() string {
	return c.Device + "@" + strconv.Itoa(c.Baud)
}
