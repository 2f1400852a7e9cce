package protocol

import (
	"errors"
	"io"
)

var ErrMessageTooLong = errors.New("message exceeds maximum frame length")

// Encoder frames messages onto a byte stream. It is the firmware side of
// the link and never allocates after construction.
type Encoder struct {
	w   io.Writer
	out *ScratchOutput
	seq uint8
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		out: NewScratchOutput(),
		seq: MessageDest,
	}
}

// Sequence returns the sequence byte the next frame will carry
func (e *Encoder) Sequence() uint8 {
	return e.seq
}

// EncodeFrame builds one frame around the payload written by frameData and
// writes it to the stream
func (e *Encoder) EncodeFrame(frameData func(output OutputBuffer)) error {
	e.out.Reset()
	cursor := e.out.CurPosition()

	// Length is patched once the payload size is known
	e.out.Output([]byte{0, e.seq})
	frameData(e.out)

	length := len(e.out.DataSince(cursor)) + MessageTrailerSize
	if length > MessageLengthMax {
		e.out.Reset()
		return ErrMessageTooLong
	}
	e.out.Update(cursor, uint8(length))

	crc := CRC16(e.out.DataSince(cursor))
	e.out.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	e.seq = ((e.seq + 1) & MessageSeqMask) | MessageDest

	_, err := e.w.Write(e.out.Result())
	e.out.Reset()
	return err
}

// Send frames a message with the given id and arguments
func (e *Encoder) Send(msgID uint32, args func(output OutputBuffer)) error {
	return e.EncodeFrame(func(output OutputBuffer) {
		EncodeVLQUint(output, msgID)
		if args != nil {
			args(output)
		}
	})
}
