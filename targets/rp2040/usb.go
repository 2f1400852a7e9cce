//go:build rp2040

package main

import (
	"errors"
	"machine"
)

var errUSBStalled = errors.New("usb: no progress")

// usbWriter sends report frames over USB CDC. A frame that cannot be
// written is dropped whole so the host decoder stays in sync; the meter
// never waits for a host.
type usbWriter struct {
	consecutiveFailures uint32

	// disconnected is set after repeated failures; only every
	// retryInterval-th frame is then attempted, until one gets through
	disconnected bool
	skipped      uint32
}

const retryInterval = 16

func initUSB() {
	// machine.Serial is USB CDC on RP2040; the baud rate is ignored
	machine.Serial.Configure(machine.UARTConfig{})
}

func (u *usbWriter) Write(frame []byte) (int, error) {
	if u.disconnected {
		u.skipped++
		if u.skipped%retryInterval != 0 {
			return 0, errUSBStalled
		}
	}

	written := 0
	for written < len(frame) {
		n, err := machine.Serial.Write(frame[written:])
		if err == nil && n == 0 {
			err = errUSBStalled
		}
		if err != nil {
			u.consecutiveFailures++
			if u.consecutiveFailures > 10 {
				u.disconnected = true
				u.consecutiveFailures = 0
			}
			return written, err
		}
		written += n
	}

	u.consecutiveFailures = 0
	u.disconnected = false
	u.skipped = 0
	return written, nil
}
