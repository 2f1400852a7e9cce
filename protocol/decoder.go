package protocol

// Decoder extracts frames from a byte stream. It is the host side of the
// link: corrupt or truncated frames are dropped and the decoder
// resynchronizes on the next sync byte.
type Decoder struct {
	input        *InputBuffer
	synchronized bool

	// Dropped counts frames discarded for bad length, sync or CRC
	Dropped uint32
}

// NewDecoder creates a decoder buffering up to size bytes of partial input
func NewDecoder(size int) *Decoder {
	if size < MessageLengthMax*2 {
		size = MessageLengthMax * 2
	}
	return &Decoder{
		input:        NewInputBuffer(size),
		synchronized: true,
	}
}

// Feed appends stream bytes and returns every complete frame found
func (d *Decoder) Feed(data []byte) []*Message {
	var msgs []*Message
	for len(data) > 0 {
		n := d.input.Write(data)
		data = data[n:]
		msgs = append(msgs, d.process()...)
		if n == 0 && len(data) > 0 {
			// Buffer full of garbage that never formed a frame
			d.input.Reset()
			d.synchronized = false
			d.Dropped++
		}
	}
	return msgs
}

// Reset discards buffered input
func (d *Decoder) Reset() {
	d.input.Reset()
	d.synchronized = true
}

func (d *Decoder) process() []*Message {
	var msgs []*Message
	data := d.input.Data()

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		if data[MessagePositionSeq]&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := make([]byte, msgLen-MessageHeaderSize-MessageTrailerSize)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		msgs = append(msgs, &Message{
			Length:   uint8(msgLen),
			Sequence: data[MessagePositionSeq],
			Payload:  payload,
			CRC:      frameCRC,
		})
		data = data[msgLen:]
	}

	consumed := d.input.Available() - len(data)
	if consumed > 0 {
		d.input.Pop(consumed)
	}
	return msgs
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.Dropped++
}
