//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// NativePort is a host serial port
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

var _ Port = (*NativePort)(nil)

// Open opens the port described by cfg
func Open(cfg *Config) (*NativePort, error) {
	switch {
	case cfg == nil:
		return nil, ErrNilConfig
	case cfg.Device == "":
		return nil, ErrNoDevice
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg, err)
	}
	return &NativePort{port: port, cfg: cfg}, nil
}

// Config returns the settings the port was opened with
func (p *NativePort) Config() *Config {
	return p.cfg
}

// Read returns 0 bytes and no error when the read timeout expires; a
// serial line never reaches end of file.
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *NativePort) Close() error {
	return p.port.Close()
}

// Flush drops stale input so decoding starts near a frame boundary
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
