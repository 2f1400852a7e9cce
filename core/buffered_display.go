package core

// FrameLCD is a character LCD driver that keeps one pending buffer. Write
// replaces that buffer and Display sends it at the cursor, advancing the
// cursor past it. tinygo.org/x/drivers/hd44780 works this way.
type FrameLCD interface {
	SetCursor(col, row uint8)
	Write(b []byte) (int, error)
	Display() error
}

// WriteThrough adapts a FrameLCD to CharDisplay by sending every Print
// immediately, so consecutive prints land side by side.
type WriteThrough struct {
	lcd FrameLCD
	err error
}

var _ CharDisplay = (*WriteThrough)(nil)

func NewWriteThrough(lcd FrameLCD) *WriteThrough {
	return &WriteThrough{lcd: lcd}
}

func (w *WriteThrough) SetCursor(col, row uint8) {
	w.lcd.SetCursor(col, row)
}

func (w *WriteThrough) Print(b []byte) int {
	n, err := w.lcd.Write(b)
	if err == nil {
		err = w.lcd.Display()
	}
	if err != nil && w.err == nil {
		w.err = err
	}
	return n
}

// Flush reports the first error since the previous Flush. Nothing is
// pending because Print already sent its text.
func (w *WriteThrough) Flush() error {
	err := w.err
	w.err = nil
	return err
}
