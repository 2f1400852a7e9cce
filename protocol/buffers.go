package protocol

// OutputBuffer is where frames and message fields are assembled
type OutputBuffer interface {
	// Output appends data to the buffer
	Output(data []byte)

	// CurPosition returns the current write position
	CurPosition() int

	// Update modifies a byte at a specific position
	Update(pos int, val byte)

	// DataSince returns data from a specific position to current
	DataSince(pos int) []byte
}

// ScratchOutput implements OutputBuffer on a fixed array, so the firmware
// never allocates while framing.
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// InputBuffer holds stream bytes that have not been parsed yet. Consumed
// bytes are dropped from the front and the rest is moved down only when
// a write would not fit, so Data never copies.
type InputBuffer struct {
	buf        []byte
	start, end int
}

// NewInputBuffer creates a buffer holding up to capacity bytes
func NewInputBuffer(capacity int) *InputBuffer {
	return &InputBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count written
func (b *InputBuffer) Write(data []byte) int {
	if b.end+len(data) > len(b.buf) && b.start > 0 {
		b.end = copy(b.buf, b.buf[b.start:b.end])
		b.start = 0
	}
	n := copy(b.buf[b.end:], data)
	b.end += n
	return n
}

// Available returns the number of unread bytes
func (b *InputBuffer) Available() int {
	return b.end - b.start
}

// Free returns the number of bytes that can still be written
func (b *InputBuffer) Free() int {
	return len(b.buf) - b.Available()
}

// Data returns the unread bytes; the slice is valid until the next Write
func (b *InputBuffer) Data() []byte {
	return b.buf[b.start:b.end]
}

// Pop drops n bytes from the front
func (b *InputBuffer) Pop(n int) {
	if n >= b.Available() {
		b.Reset()
		return
	}
	b.start += n
}

// Reset clears the buffer
func (b *InputBuffer) Reset() {
	b.start = 0
	b.end = 0
}
