package protocol

import (
	"errors"
	"fmt"
)

// Message ids
const (
	MsgIdentify uint32 = 1
	MsgReport   uint32 = 2
)

var ErrUnknownMessage = errors.New("unknown message id")

// Identify describes the meter; it is sent once after startup
type Identify struct {
	Version   string
	TickFreq  uint32 // timebase frequency in Hz
	GateTicks uint32 // requested gate length in ticks
	Columns   uint8  // display width
}

// Encode writes the identify fields (without the message id)
func (m *Identify) Encode(output OutputBuffer) {
	EncodeVLQString(output, m.Version)
	EncodeVLQUint(output, m.TickFreq)
	EncodeVLQUint(output, m.GateTicks)
	EncodeVLQUint(output, uint32(m.Columns))
}

// Decode reads the identify fields
func (m *Identify) Decode(data *[]byte) error {
	var err error
	if m.Version, err = DecodeVLQString(data); err != nil {
		return err
	}
	if m.TickFreq, err = DecodeVLQUint(data); err != nil {
		return err
	}
	if m.GateTicks, err = DecodeVLQUint(data); err != nil {
		return err
	}
	columns, err := DecodeVLQUint(data)
	if err != nil {
		return err
	}
	m.Columns = uint8(columns)
	return nil
}

// Report carries one gate result
type Report struct {
	Seq    uint32 // measurement number since startup
	Mode   uint8
	Pulses uint32
	Ticks  uint32 // actual gate length
	Start  uint32 // low 32 bits of the timebase at gate open
}

// Encode writes the report fields (without the message id)
func (m *Report) Encode(output OutputBuffer) {
	EncodeVLQUint(output, m.Seq)
	EncodeVLQUint(output, uint32(m.Mode))
	EncodeVLQUint(output, m.Pulses)
	EncodeVLQUint(output, m.Ticks)
	EncodeVLQUint(output, m.Start)
}

// Decode reads the report fields
func (m *Report) Decode(data *[]byte) error {
	var err error
	if m.Seq, err = DecodeVLQUint(data); err != nil {
		return err
	}
	mode, err := DecodeVLQUint(data)
	if err != nil {
		return err
	}
	m.Mode = uint8(mode)
	if m.Pulses, err = DecodeVLQUint(data); err != nil {
		return err
	}
	if m.Ticks, err = DecodeVLQUint(data); err != nil {
		return err
	}
	m.Start, err = DecodeVLQUint(data)
	return err
}

// ParseMessage decodes the payload of msg into *Identify or *Report
func ParseMessage(msg *Message) (any, error) {
	payload := msg.Payload
	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return nil, err
	}

	switch id {
	case MsgIdentify:
		var m Identify
		if err := m.Decode(&payload); err != nil {
			return nil, fmt.Errorf("identify: %w", err)
		}
		return &m, nil
	case MsgReport:
		var m Report
		if err := m.Decode(&payload); err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, id)
	}
}
