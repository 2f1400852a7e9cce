// Package protocol implements the framed wire format used to stream meter
// readings from the firmware to a host.
//
// Frame layout:
//
//	len | seq | payload... | crc_hi | crc_lo | 0x7E
//
// len counts the whole frame, seq carries MessageDest in its high nibble and
// a rolling sequence number in the low nibble, and the CRC covers len, seq
// and the payload. The payload is a VLQ message id followed by VLQ fields.
package protocol

// Version is the firmware version reported in the identify message
const Version = "0.2.0"

// Framing constants
const (
	MessageMax         = 128 // scratch buffer size
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F
)

// Message is a decoded frame
type Message struct {
	Length   uint8
	Sequence uint8
	Payload  []byte // frame data without header/trailer
	CRC      uint16
}
